package analyses

import "time"

// Record is the scored feedback for one resume. JSON keys are consumed verbatim by the web client.
type Record struct {
	ATSScore              int    `json:"atsScore"`
	ImpactScore           int    `json:"impactScore"`
	BrevityScore          int    `json:"brevityScore"`
	ActionVerbScore       int    `json:"actionVerbScore"`
	Summary               string `json:"summary"`
	Strengths             string `json:"strengths"`
	Weaknesses            string `json:"weaknesses"`
	SuggestedImprovements string `json:"suggestedImprovements"`
	FoundKeywords         string `json:"foundKeywords"`
	MissingKeywords       string `json:"missingKeywords"`
	PartialAnalysis       bool   `json:"partialAnalysis"`
	ResumeID              string `json:"resumeId,omitempty"`
}

// Source records where a stored record came from.
type Source string

const (
	SourceAI   Source = "ai"
	SourceMock Source = "mock"
)

// Analysis is a persisted Record.
type Analysis struct {
	ID             string
	UserID         string
	Source         Source
	DegradedReason Reason
	CreatedAt      time.Time
	Record
}

// Response is the JSON body of both analysis endpoints.
type Response struct {
	ID string `json:"id"`
	Record
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(a Analysis) Response {
	return Response{ID: a.ID, Record: a.Record, CreatedAt: a.CreatedAt}
}
