package analyses

import (
	"strings"

	"elevate-backend/internal/shared/validation"
)

// AnalyzeRequest is the optional body of POST /resumes/:id/analyze.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription" validate:"max=20000"`
}

// NewAnalyzeRequest trims and validates the job description.
func NewAnalyzeRequest(jobDescription string) (AnalyzeRequest, error) {
	req := AnalyzeRequest{JobDescription: strings.TrimSpace(jobDescription)}
	if err := req.Validate(); err != nil {
		return AnalyzeRequest{}, err
	}
	return req, nil
}

func (r AnalyzeRequest) Validate() error {
	return validation.Struct(r)
}
