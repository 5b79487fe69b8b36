package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hiremote/portal/internal/db"
	"github.com/hiremote/portal/internal/models"
)

const employeeDashboardLimit = 5

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	switch user.Role {
	case models.RoleEmployee:
		return handler.employeeDashboard(c, user)
	case models.RoleIronhand:
		return handler.ironhandDashboard(c)
	case models.RoleClient:
		return c.Redirect("/reports", fiber.StatusSeeOther)
	default:
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}
}

func (handler *Handler) employeeDashboard(c *fiber.Ctx, user *models.User) error {
	submissions, err := handler.submissions.Fetch(db.SubmissionFilter{
		Store:    user.StoreNumber,
		Category: models.CategoryShift,
		Employee: user.Name,
	})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load submissions")
	}
	if len(submissions) > employeeDashboardLimit {
		submissions = submissions[:employeeDashboardLimit]
	}

	return handler.render(c, "dashboard_employee", fiber.Map{
		"Submissions": buildSubmissionRows(submissions),
	})
}

func (handler *Handler) ironhandDashboard(c *fiber.Ctx) error {
	submissions, err := handler.submissions.Fetch(db.SubmissionFilter{})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load submissions")
	}
	stores, err := handler.submissions.Stores()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load stores")
	}

	return handler.render(c, "dashboard_ironhand", fiber.Map{
		"Reports": buildSubmissionRows(submissions),
		"Stores":  stores,
	})
}
