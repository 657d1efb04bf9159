package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Me returns the authenticated caller's identity and role set.
func Me(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"uid":         pr.SubjectID,
		"email":       pr.Email,
		"displayName": pr.DisplayName,
		"roles":       pr.Roles,
	})
}
