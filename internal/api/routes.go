package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/models"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/", handler.Index)

	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Get("/logout", handler.Logout)

	app.Get("/dashboard", handler.AuthRequired, handler.Dashboard)

	app.Post("/upload/shift", handler.AuthRequired, handler.RequireRole(models.RoleEmployee), handler.UploadShift)
	app.Post("/upload/report", handler.AuthRequired, handler.RequireRole(models.RoleIronhand), handler.UploadReport)

	app.Get("/reports", handler.AuthRequired, handler.Reports)

	app.Post("/api/assistant", handler.AuthRequired, handler.AskAssistant)

	app.Get("/files/*", handler.AuthRequired, handler.DownloadFile)
}
