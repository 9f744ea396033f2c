package users

import "time"

// User is an account created through an OAuth login.
type User struct {
	ID         string
	Name       string
	Email      string
	PictureURL string
	Provider   string
	ProviderID string
	IsPro      bool
	ScansUsed  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MeResponse is the body of GET /user/me.
type MeResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Picture     string `json:"picture"`
	Provider    string `json:"provider"`
	IsPro       bool   `json:"isPro"`
	ScansUsed   int    `json:"scansUsed"`
	ResumeCount int    `json:"resumeCount"`
}
