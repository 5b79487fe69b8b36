package api

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/storage"
)

// DownloadFile serves a previously uploaded file. Absolute paths and
// parent-directory segments are rejected before touching the disk.
func (handler *Handler) DownloadFile(c *fiber.Ctx) error {
	relPath, err := url.PathUnescape(c.Params("*"))
	if err != nil || strings.TrimSpace(relPath) == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid file path")
	}

	absolute, err := handler.uploads.Resolve(relPath)
	if err != nil {
		if errors.Is(err, storage.ErrUnsafePath) {
			return c.Status(fiber.StatusBadRequest).SendString("invalid file path")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("failed to resolve file")
	}

	info, err := os.Stat(absolute)
	if err != nil || info.IsDir() {
		return c.Status(fiber.StatusNotFound).SendString("file not found")
	}
	return c.SendFile(absolute)
}
