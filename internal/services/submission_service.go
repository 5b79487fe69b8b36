package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/models"
)

// submissionTimeLayout keeps a fixed-width fractional second so stored
// timestamps order correctly under plain text comparison.
const submissionTimeLayout = "2006-01-02T15:04:05.000000"

type SubmissionStore interface {
	Create(submission *models.Submission) error
	List(filter db.SubmissionFilter) ([]models.Submission, error)
	DistinctStores() ([]string, error)
}

type SubmissionService struct {
	submissions SubmissionStore
	now         func() time.Time
}

func NewSubmissionService(submissions SubmissionStore) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		now:         time.Now,
	}
}

// Store inserts one immutable submission row with a server-generated UTC
// timestamp. Employee name and store number are captured from the user
// at this moment and never re-joined.
func (service *SubmissionService) Store(
	user models.User,
	category string,
	reportType string,
	notes string,
	payload models.SubmissionPayload,
) (models.Submission, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return models.Submission{}, fmt.Errorf("encode submission payload: %w", err)
	}

	submission := models.Submission{
		UserID:       user.ID,
		EmployeeName: user.Name,
		StoreNumber:  user.StoreNumber,
		Category:     category,
		ReportType:   reportType,
		Notes:        notes,
		Payload:      string(encoded),
		CreatedAt:    service.now().UTC().Format(submissionTimeLayout),
	}
	if err := service.submissions.Create(&submission); err != nil {
		return models.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	return submission, nil
}

func (service *SubmissionService) Fetch(filter db.SubmissionFilter) ([]models.Submission, error) {
	return service.submissions.List(filter)
}

// Recent returns up to limit newest submissions for one store.
func (service *SubmissionService) Recent(store string, limit int) ([]models.Submission, error) {
	submissions, err := service.submissions.List(db.SubmissionFilter{Store: store})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(submissions) > limit {
		submissions = submissions[:limit]
	}
	return submissions, nil
}

func (service *SubmissionService) Stores() ([]string, error) {
	return service.submissions.DistinctStores()
}
