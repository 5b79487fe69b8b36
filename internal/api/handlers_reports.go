package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/models"
)

// Reports lists submissions for clients and ironhand. A client's store
// filter is always forced to their own store, whatever the query says.
func (handler *Handler) Reports(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if user.Role != models.RoleClient && user.Role != models.RoleIronhand {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	filter := db.SubmissionFilter{
		Store:    c.Query("store_number"),
		Category: c.Query("category"),
		Employee: c.Query("employee"),
		Start:    c.Query("start"),
		End:      c.Query("end"),
	}
	if user.Role == models.RoleClient {
		filter.Store = user.StoreNumber
	}

	submissions, err := handler.submissions.Fetch(filter)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load submissions")
	}

	return handler.render(c, "reports", fiber.Map{
		"Submissions": buildSubmissionRows(submissions),
		"Filters":     filter,
	})
}
