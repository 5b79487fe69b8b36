package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/models"
	"github.com/hiremote/portal/internal/storage"
)

// shiftUploadFields are the three required end-of-shift files, in the
// order they are processed.
var shiftUploadFields = []string{"scratcher_video", "cash_photo", "sales_photo"}

func (handler *Handler) UploadShift(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	notes := c.FormValue("notes")

	fields := make([]storage.UploadField, 0, len(shiftUploadFields))
	for _, name := range shiftUploadFields {
		file, err := c.FormFile(name)
		if err != nil {
			file = nil
		}
		fields = append(fields, storage.UploadField{Name: name, File: file})
	}

	saved, err := handler.uploads.SaveUploadedFiles(fields)
	if err != nil {
		var unsupported *storage.UnsupportedFileTypeError
		if errors.As(err, &unsupported) {
			setFlashCookie(c, FlashPayload{Error: unsupported.Error()})
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save files")
	}

	if len(saved) < len(shiftUploadFields) {
		setFlashCookie(c, FlashPayload{Error: "All three files are required for end-of-shift upload."})
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	payload := models.SubmissionPayload{Files: saved, Notes: notes}
	if _, err := handler.submissions.Store(*user, models.CategoryShift, models.CategoryShift, notes, payload); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store submission")
	}

	setFlashCookie(c, FlashPayload{Success: "Shift submitted. Great work!"})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (handler *Handler) UploadReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	reportType := strings.TrimSpace(c.FormValue("report_type"))
	if reportType == "" {
		reportType = models.DefaultReportType
	}
	summary := c.FormValue("summary")
	notes := c.FormValue("notes")

	files := make([]models.StoredFile, 0, 1)
	if file, err := c.FormFile("report_file"); err == nil && file != nil {
		saved, err := handler.uploads.SaveUploadedFiles([]storage.UploadField{{Name: "report_file", File: file}})
		if err != nil {
			var unsupported *storage.UnsupportedFileTypeError
			if errors.As(err, &unsupported) {
				setFlashCookie(c, FlashPayload{Error: unsupported.Error()})
				return c.Redirect("/dashboard", fiber.StatusSeeOther)
			}
			return apiError(c, fiber.StatusInternalServerError, "failed to save files")
		}
		files = saved
	}

	payload := models.SubmissionPayload{Summary: summary, Files: files}
	if _, err := handler.submissions.Store(*user, reportType, reportType, notes, payload); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store submission")
	}

	setFlashCookie(c, FlashPayload{Success: fmt.Sprintf("%s report sent!", titleCase(reportType))})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
