package db

import (
	"github.com/hiremote/portal/internal/models"
	"gorm.io/gorm"
)

// SubmissionFilter narrows a listing to rows matching every non-empty
// field. Start and End compare as text against the stored ISO timestamp,
// inclusive on both sides.
type SubmissionFilter struct {
	Store    string
	Category string
	Employee string
	Start    string
	End      string
}

type SubmissionRepository struct {
	database *gorm.DB
}

func NewSubmissionRepository(database *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{database: database}
}

func (repo *SubmissionRepository) Create(submission *models.Submission) error {
	return repo.database.Create(submission).Error
}

func (repo *SubmissionRepository) List(filter SubmissionFilter) ([]models.Submission, error) {
	query := repo.database.Model(&models.Submission{})
	if filter.Store != "" {
		query = query.Where("store_number = ?", filter.Store)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Employee != "" {
		query = query.Where("employee_name = ?", filter.Employee)
	}
	if filter.Start != "" {
		query = query.Where("created_at >= ?", filter.Start)
	}
	if filter.End != "" {
		query = query.Where("created_at <= ?", filter.End)
	}

	submissions := make([]models.Submission, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (repo *SubmissionRepository) DistinctStores() ([]string, error) {
	stores := make([]string, 0)
	if err := repo.database.Model(&models.Submission{}).
		Distinct("store_number").
		Order("store_number ASC").
		Pluck("store_number", &stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}
