package users

import (
	"encoding/json"
	"time"
)

// Roles a user account can hold.
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// ScoringRecord is the persisted result of the most recent ATS scoring
// attempt. A profile holds at most one; each new attempt overwrites it.
type ScoringRecord struct {
	ComputedAt      time.Time       `json:"computedAt"`
	Raw             json.RawMessage `json:"raw,omitempty"`
	Reply           string          `json:"reply"`
	Parsed          json.RawMessage `json:"parsed,omitempty"`
	Score           *int            `json:"score"`
	Heuristic       bool            `json:"heuristic"`
	Recommendations []string        `json:"recommendations"`
}

// Profile holds the job-seeker facing fields of a user.
type Profile struct {
	Bio                string         `json:"bio,omitempty"`
	Skills             []string       `json:"skills,omitempty"`
	Resume             string         `json:"resume,omitempty"`
	ResumeOriginalName string         `json:"resumeOriginalName,omitempty"`
	ProfilePhoto       string         `json:"profilePhoto,omitempty"`
	ATSScore           *ScoringRecord `json:"atsAi,omitempty"`
}

// User is an account on the job board.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
