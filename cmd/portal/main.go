package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hiremote/portal/internal/api"
	"github.com/hiremote/portal/internal/assistant"
	"github.com/hiremote/portal/internal/config"
	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/pos"
	"github.com/hiremote/portal/internal/services"
	"github.com/hiremote/portal/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.SecretKey == "change-me" {
		log.Println("warning: PORTAL_SECRET is unset, using the default secret key")
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := db.SeedDefaultUsers(database); err != nil {
		log.Fatalf("seed users failed: %v", err)
	}

	uploads, err := storage.NewUploadStore(cfg.UploadRoot)
	if err != nil {
		log.Fatalf("upload store init failed: %v", err)
	}

	// Missing analytics or chat credentials degrade those features, they
	// never block startup.
	var analytics *pos.Client
	if cfg.AnalyticsConfigured() {
		analytics, err = pos.Open(cfg.AnalyticsDSN, pos.TableConfig{
			DailyTable:  cfg.PosDailyTable,
			ItemTable:   cfg.PosItemTable,
			StoreColumn: cfg.PosStoreColumn,
			DateColumn:  cfg.PosDateColumn,
		})
		if err != nil {
			log.Printf("analytics store unavailable, POS summaries degraded: %v", err)
			analytics = nil
		}
	} else {
		log.Println("analytics store not configured, POS summaries degraded")
	}

	var chat assistant.Completer
	if cfg.ChatConfigured() {
		chat = assistant.NewChatClient(cfg.ChatBaseURL, cfg.ChatAPIKey, cfg.ChatModel)
	} else {
		log.Println("chat service not configured, assistant degraded")
	}

	submissionService := services.NewSubmissionService(db.NewSubmissionRepository(database))
	assistantService := assistant.NewService(submissionService, analytics, chat, cfg.HistoryWindow)

	handler, err := api.NewHandler(database, uploads, assistantService, api.HandlerConfig{
		SecretKey:    cfg.SecretKey,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		TemplateDir:  filepath.Join("internal", "templates"),
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Hiremote Operations Portal",
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("portal listening on http://0.0.0.0:%s (db: %s, uploads: %s)", cfg.Port, cfg.DBPath, cfg.UploadRoot)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
