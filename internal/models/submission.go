package models

import (
	"encoding/json"
	"strings"
)

const (
	CategoryShift     = "shift"
	DefaultReportType = "daily"
)

// Submission is immutable once created. EmployeeName and StoreNumber are
// copied from the user at submission time and stay authoritative for
// filtering even if the user record later changes.
type Submission struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;index"`
	EmployeeName string `gorm:"not null"`
	StoreNumber  string `gorm:"not null;index"`
	Category     string `gorm:"not null"`
	ReportType   string
	Notes        string
	Payload      string
	// CreatedAt is a UTC ISO-8601 string so rows sort correctly as text.
	CreatedAt string `gorm:"not null;index"`
}

// StoredFile describes one uploaded file referenced from a submission payload.
type StoredFile struct {
	Field        string `json:"field"`
	StoredName   string `json:"stored_name"`
	OriginalName string `json:"original_name"`
	Mime         string `json:"mime"`
}

type SubmissionPayload struct {
	Files   []StoredFile `json:"files"`
	Summary string       `json:"summary,omitempty"`
	Notes   string       `json:"notes,omitempty"`
}

// DecodedPayload tolerates empty or corrupt payload text and returns an
// empty payload in that case, mirroring how views treat legacy rows.
func (submission Submission) DecodedPayload() SubmissionPayload {
	raw := strings.TrimSpace(submission.Payload)
	if raw == "" {
		return SubmissionPayload{}
	}
	payload := SubmissionPayload{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return SubmissionPayload{}
	}
	return payload
}
