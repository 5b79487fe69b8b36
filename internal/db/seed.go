package db

import (
	"fmt"
	"strings"

	"github.com/hiremote/portal/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Name        string
	Email       string
	Password    string
	Role        string
	StoreNumber string
}

var defaultUsers = []seedUser{
	{
		Name:        "Alex Employee",
		Email:       "employee@hiremote.com",
		Password:    "password123",
		Role:        models.RoleEmployee,
		StoreNumber: "101",
	},
	{
		Name:        "Bianca Ironhand",
		Email:       "ironhand@hiremote.com",
		Password:    "operations123",
		Role:        models.RoleIronhand,
		StoreNumber: "H1",
	},
	{
		Name:        "Chris Client",
		Email:       "client@hiremote.com",
		Password:    "clientaccess",
		Role:        models.RoleClient,
		StoreNumber: "101",
	},
}

// SeedDefaultUsers inserts the bundled demo accounts for any email not
// already present. Existing accounts are never touched.
func SeedDefaultUsers(database *gorm.DB) error {
	users := NewUserRepository(database)
	for _, seed := range defaultUsers {
		email := strings.ToLower(strings.TrimSpace(seed.Email))
		exists, err := users.ExistsByNormalizedEmail(email)
		if err != nil {
			return fmt.Errorf("check seed user %s: %w", email, err)
		}
		if exists {
			continue
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", email, err)
		}

		user := models.User{
			Name:         seed.Name,
			Email:        email,
			PasswordHash: string(passwordHash),
			Role:         seed.Role,
			StoreNumber:  seed.StoreNumber,
		}
		if err := users.Create(&user); err != nil {
			return fmt.Errorf("create seed user %s: %w", email, err)
		}
	}
	return nil
}
