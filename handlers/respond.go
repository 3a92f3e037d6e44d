package handlers

import (
	"courtdesk/apperrors"

	"github.com/labstack/echo/v4"
)

// respondError maps a pipeline error to its HTTP response. Every error
// carries a stable code so callers can distinguish state conflicts
// ("already done") from real failures.
func respondError(c echo.Context, err error) error {
	appErr := apperrors.From(err)
	return c.JSON(appErr.Status, map[string]interface{}{
		"error": map[string]string{
			"code":    string(appErr.Code),
			"message": appErr.Message,
		},
	})
}
