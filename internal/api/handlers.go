package api

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/hiremote/portal/internal/assistant"
	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/models"
	"github.com/hiremote/portal/internal/services"
	"github.com/hiremote/portal/internal/storage"
	"gorm.io/gorm"
)

const appName = "Hiremote Operations Portal"

type Handler struct {
	repositories *db.Repositories
	authService  *services.AuthService
	submissions  *services.SubmissionService
	uploads      *storage.UploadStore
	assistant    *assistant.Service
	secretKey    []byte
	sessionTTL   time.Duration
	cookieSecure bool
	templates    map[string]*template.Template
}

type HandlerConfig struct {
	SecretKey    string
	SessionTTL   time.Duration
	CookieSecure bool
	TemplateDir  string
}

// NewHandler wires every collaborator once at startup; handlers never
// lazily initialize dependencies.
func NewHandler(
	database *gorm.DB,
	uploads *storage.UploadStore,
	assistantService *assistant.Service,
	cfg HandlerConfig,
) (*Handler, error) {
	if database == nil {
		return nil, fmt.Errorf("database is required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload store is required")
	}
	if assistantService == nil {
		return nil, fmt.Errorf("assistant service is required")
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 10 * time.Hour
	}

	templates, err := parseTemplates(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users),
		submissions:  services.NewSubmissionService(repositories.Submissions),
		uploads:      uploads,
		assistant:    assistantService,
		secretKey:    []byte(cfg.SecretKey),
		sessionTTL:   sessionTTL,
		cookieSecure: cfg.CookieSecure,
		templates:    templates,
	}, nil
}

func parseTemplates(templateDir string) (map[string]*template.Template, error) {
	funcMap := template.FuncMap{
		"formatTimestamp": formatSubmissionTimestamp,
		"titleCase":       titleCase,
	}

	pages := []string{
		"login",
		"dashboard_employee",
		"dashboard_ironhand",
		"reports",
	}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

// formatSubmissionTimestamp shortens a stored ISO timestamp for display.
func formatSubmissionTimestamp(raw string) string {
	if len(raw) >= 16 {
		return raw[:10] + " " + raw[11:16]
	}
	return raw
}

func titleCase(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return value
	}
	return strings.ToUpper(string(runes[:1])) + string(runes[1:])
}

// submissionRow pairs a submission with its decoded payload for views.
type submissionRow struct {
	Submission models.Submission
	Payload    models.SubmissionPayload
}

func buildSubmissionRows(submissions []models.Submission) []submissionRow {
	rows := make([]submissionRow, 0, len(submissions))
	for _, submission := range submissions {
		rows = append(rows, submissionRow{
			Submission: submission,
			Payload:    submission.DecodedPayload(),
		})
	}
	return rows
}
