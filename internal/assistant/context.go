package assistant

import (
	"time"

	"github.com/hiremote/portal/internal/models"
	"github.com/hiremote/portal/internal/pos"
)

const (
	recentActivityLimit = 10
	notesPreviewRunes   = 160
)

// StoreContext is the ephemeral grounding bundle handed to the chat
// service for a single request. It is never persisted.
type StoreContext struct {
	Store          string              `json:"store"`
	GeneratedAt    string              `json:"generated_at"`
	RecentActivity []SubmissionSummary `json:"recent_activity"`
	CategoryCounts map[string]int      `json:"category_counts"`
	Pos            pos.Summary         `json:"pos_summary"`
}

type SubmissionSummary struct {
	Category   string `json:"category"`
	ReportType string `json:"report_type,omitempty"`
	Employee   string `json:"employee"`
	Store      string `json:"store"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// BuildStoreContext aggregates the store's recent submissions and POS
// summary. A degraded POS summary never blocks the recent-activity data.
func (service *Service) BuildStoreContext(user models.User) (StoreContext, error) {
	recent, err := service.submissions.Recent(user.StoreNumber, recentActivityLimit)
	if err != nil {
		return StoreContext{}, err
	}

	activity := make([]SubmissionSummary, 0, len(recent))
	counts := make(map[string]int)
	for _, submission := range recent {
		counts[submission.Category]++
		activity = append(activity, SubmissionSummary{
			Category:   submission.Category,
			ReportType: submission.ReportType,
			Employee:   submission.EmployeeName,
			Store:      submission.StoreNumber,
			Notes:      truncateNotes(submission.Notes),
			CreatedAt:  submission.CreatedAt,
		})
	}

	posSummary := pos.Summary{Status: pos.StatusNotConfigured}
	if service.analytics != nil {
		posSummary = service.analytics.LoadSummary(user.StoreNumber)
	}

	return StoreContext{
		Store:          user.StoreNumber,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		RecentActivity: activity,
		CategoryCounts: counts,
		Pos:            posSummary,
	}, nil
}

func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= notesPreviewRunes {
		return notes
	}
	return string(runes[:notesPreviewRunes]) + "..."
}
