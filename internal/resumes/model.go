package resumes

import "time"

// Resume is an uploaded PDF and the text extracted from it.
// UserID is empty for anonymous uploads.
type Resume struct {
	ID            string
	UserID        string
	FileName      string
	MimeType      string
	SizeBytes     int64
	StorageKey    string
	ExtractedText string
	CreatedAt     time.Time
}

// UploadResponse is returned by POST /resumes.
type UploadResponse struct {
	ResumeID string `json:"resumeId"`
	Message  string `json:"message"`
}

// HistoryItem is one row of GET /resumes/history.
type HistoryItem struct {
	ID        string `json:"id"`
	FileName  string `json:"fileName"`
	ATSScore  int    `json:"atsScore"`
	CreatedAt string `json:"createdAt"`
}
