package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/assistant"
	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/models"
	"github.com/hiremote/portal/internal/services"
	"github.com/hiremote/portal/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubCompleter records the single outbound chat call tests allow.
type stubCompleter struct {
	reply    string
	err      error
	calls    int
	messages []assistant.Message
	metadata map[string]string
}

func (stub *stubCompleter) Complete(_ context.Context, messages []assistant.Message, metadata map[string]string) (string, error) {
	stub.calls++
	stub.messages = messages
	stub.metadata = metadata
	return stub.reply, stub.err
}

type testPortal struct {
	App      *fiber.App
	Database *gorm.DB
	Uploads  *storage.UploadStore
	Chat     *stubCompleter
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	apiDir := filepath.Dir(testFile)
	templatesDir := filepath.Join(filepath.Dir(apiDir), "templates")

	databasePath := filepath.Join(t.TempDir(), "portal-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	uploads, err := storage.NewUploadStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("init upload store: %v", err)
	}

	chat := &stubCompleter{reply: "Stub reply."}
	submissionService := services.NewSubmissionService(db.NewSubmissionRepository(database))
	assistantService := assistant.NewService(submissionService, nil, chat, 0)

	handler, err := NewHandler(database, uploads, assistantService, HandlerConfig{
		SecretKey:   "test-secret-key",
		SessionTTL:  10 * time.Hour,
		TemplateDir: templatesDir,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testPortal{
		App:      app,
		Database: database,
		Uploads:  uploads,
		Chat:     chat,
	}
}

func createTestUser(t *testing.T, database *gorm.DB, name string, email string, password string, role string, store string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passwordHash),
		Role:         role,
		StoreNumber:  store,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	form := url.Values{
		"email":    {email},
		"password": {password},
	}
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == "portal_auth" && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

type filePart struct {
	Field    string
	Filename string
	Content  string
}

func buildMultipartBody(t *testing.T, values map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range values {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field %s: %v", key, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", file.Field, err)
		}
		if _, err := part.Write([]byte(file.Content)); err != nil {
			t.Fatalf("write form file %s: %v", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
