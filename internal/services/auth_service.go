package services

import (
	"errors"
	"strings"

	"github.com/hiremote/portal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// responses never reveal which factor failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// timingEqualizerHash is compared against when the email is unknown so a
// failed lookup costs the same bcrypt work as a wrong password.
var timingEqualizerHash = mustHashPassword("portal-timing-equalizer")

func mustHashPassword(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}

type AuthUserRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	user, err := service.users.FindByNormalizedEmail(normalized)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(timingEqualizerHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
