package handlers

import (
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

// RequestAssignmentHandler lets a lawyer bid for an unrepresented case
func RequestAssignmentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	request, err := services.NewAssignmentService(db.DB).Request(user, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, request)
}

// ListAssignmentRequestsHandler lists requests; reviewers see all,
// lawyers only their own
func ListAssignmentRequestsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	requests, err := services.NewAssignmentService(db.DB).List(user, c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, requests)
}

type reviewAssignmentRequest struct {
	Approve bool `json:"approve"`
}

// ReviewAssignmentRequestHandler approves or rejects a pending request
func ReviewAssignmentRequestHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req reviewAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	request, svcErr := services.NewAssignmentService(db.DB).Review(user, uint(requestID), req.Approve)
	if svcErr != nil {
		return respondError(c, svcErr)
	}

	return c.JSON(http.StatusOK, request)
}
