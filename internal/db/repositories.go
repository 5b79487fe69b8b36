package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Submissions *SubmissionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Submissions: NewSubmissionRepository(database),
	}
}
