package writing

import (
	"strings"

	"elevate-backend/internal/shared/validation"
)

// EnhanceRequest is the body of POST /resumes/enhance.
type EnhanceRequest struct {
	BulletPoint string `json:"bulletPoint" validate:"required,max=2000"`
	TargetJob   string `json:"targetJob" validate:"max=200"`
}

func NewEnhanceRequest(bulletPoint, targetJob string) (EnhanceRequest, error) {
	req := EnhanceRequest{
		BulletPoint: strings.TrimSpace(bulletPoint),
		TargetJob:   strings.TrimSpace(targetJob),
	}
	return req, req.Validate()
}

func (r EnhanceRequest) Validate() error {
	return validation.Struct(r)
}

type EnhanceResponse struct {
	EnhancedBulletPoint string `json:"enhancedBulletPoint"`
}

// CoverLetterRequest is the optional body of POST /resumes/:id/cover-letter.
type CoverLetterRequest struct {
	JobDescription string `json:"jobDescription" validate:"max=20000"`
}

func NewCoverLetterRequest(jobDescription string) (CoverLetterRequest, error) {
	req := CoverLetterRequest{JobDescription: strings.TrimSpace(jobDescription)}
	return req, req.Validate()
}

func (r CoverLetterRequest) Validate() error {
	return validation.Struct(r)
}

type CoverLetterResponse struct {
	CoverLetter string `json:"coverLetter"`
}
