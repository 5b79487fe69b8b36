package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxUploadBytes = 512 * 1024 * 1024
	defaultSessionTTL     = 10 * time.Hour
	defaultHistoryWindow  = 6
)

// Config holds every runtime knob. Analytics and chat settings are
// optional: when absent the matching feature degrades instead of
// blocking startup.
type Config struct {
	Port           string        `yaml:"port"`
	SecretKey      string        `yaml:"secretKey"`
	DBPath         string        `yaml:"dbPath"`
	UploadRoot     string        `yaml:"uploadRoot"`
	MaxUploadBytes int           `yaml:"maxUploadBytes"`
	SessionTTL     time.Duration `yaml:"sessionTTL"`
	CookieSecure   bool          `yaml:"cookieSecure"`

	AnalyticsDSN   string `yaml:"analyticsDSN"`
	PosDailyTable  string `yaml:"posDailyTable"`
	PosItemTable   string `yaml:"posItemTable"`
	PosStoreColumn string `yaml:"posStoreColumn"`
	PosDateColumn  string `yaml:"posDateColumn"`

	ChatBaseURL   string `yaml:"chatBaseURL"`
	ChatAPIKey    string `yaml:"chatAPIKey"`
	ChatModel     string `yaml:"chatModel"`
	HistoryWindow int    `yaml:"historyWindow"`
}

// Load builds the config from defaults, an optional YAML file and
// environment overrides, in that order. A missing file is only an error
// when the path was given explicitly.
func Load(path string) (Config, error) {
	cfg := defaults()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv("PORTAL_CONFIG"))
		explicit = path != ""
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:           "8080",
		SecretKey:      "change-me",
		DBPath:         filepath.Join("data", "portal.db"),
		UploadRoot:     filepath.Join("storage", "uploads"),
		MaxUploadBytes: defaultMaxUploadBytes,
		SessionTTL:     defaultSessionTTL,
		HistoryWindow:  defaultHistoryWindow,
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.SecretKey, "PORTAL_SECRET")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.UploadRoot, "UPLOAD_ROOT")
	setString(&cfg.AnalyticsDSN, "POS_DATABASE_URL")
	setString(&cfg.PosDailyTable, "POS_DAILY_TABLE")
	setString(&cfg.PosItemTable, "POS_ITEM_TABLE")
	setString(&cfg.PosStoreColumn, "POS_STORE_COLUMN")
	setString(&cfg.PosDateColumn, "POS_DATE_COLUMN")
	setString(&cfg.ChatBaseURL, "CHAT_BASE_URL")
	setString(&cfg.ChatAPIKey, "CHAT_API_KEY")
	setString(&cfg.ChatModel, "CHAT_MODEL")

	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_MB")); raw != "" {
		if megabytes, err := strconv.Atoi(raw); err == nil && megabytes > 0 {
			cfg.MaxUploadBytes = megabytes * 1024 * 1024
		}
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CHAT_HISTORY_WINDOW")); raw != "" {
		if window, err := strconv.Atoi(raw); err == nil && window > 0 {
			cfg.HistoryWindow = window
		}
	}
	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		if secure, err := strconv.ParseBool(raw); err == nil {
			cfg.CookieSecure = secure
		}
	}
}

func setString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("config: port is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("config: dbPath is required")
	}
	if strings.TrimSpace(cfg.UploadRoot) == "" {
		return errors.New("config: uploadRoot is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("config: maxUploadBytes must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return errors.New("config: sessionTTL must be positive")
	}
	return nil
}

// ChatConfigured reports whether the outbound chat bridge can be built.
func (cfg Config) ChatConfigured() bool {
	return strings.TrimSpace(cfg.ChatBaseURL) != "" && strings.TrimSpace(cfg.ChatModel) != ""
}

// AnalyticsConfigured reports whether the POS warehouse can be queried.
func (cfg Config) AnalyticsConfigured() bool {
	return strings.TrimSpace(cfg.AnalyticsDSN) != ""
}
