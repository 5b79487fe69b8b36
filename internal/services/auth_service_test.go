package services

import (
	"errors"
	"testing"

	"github.com/hiremote/portal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	users map[string]models.User
}

func (repo *fakeUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := repo.users[email]
	if !ok {
		return models.User{}, errors.New("record not found")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByID(userID uint) (models.User, error) {
	for _, user := range repo.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, errors.New("record not found")
}

func newFakeUserRepository(t *testing.T) *fakeUserRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &fakeUserRepository{users: map[string]models.User{
		"alex@example.com": {
			ID:           1,
			Name:         "Alex Employee",
			Email:        "alex@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleEmployee,
			StoreNumber:  "101",
		},
	}}
}

func TestAuthenticateAcceptsValidCredentials(t *testing.T) {
	service := NewAuthService(newFakeUserRepository(t))

	user, err := service.Authenticate("alex@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Role != models.RoleEmployee {
		t.Fatalf("unexpected user returned: %+v", user)
	}
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepository(t))

	if _, err := service.Authenticate("  Alex@Example.COM  ", "password123"); err != nil {
		t.Fatalf("expected normalized email to authenticate, got %v", err)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	service := NewAuthService(newFakeUserRepository(t))

	_, wrongPassword := service.Authenticate("alex@example.com", "nope")
	_, unknownEmail := service.Authenticate("ghost@example.com", "password123")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatal("failure modes must not be distinguishable by message")
	}
}
