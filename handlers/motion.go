package handlers

import (
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

type fileMotionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DocumentID  *uint  `json:"document_id"`
}

// FileMotionHandler files a motion against a case
func FileMotionHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req fileMotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	motion, err := services.NewMotionService(db.DB).File(user, c.Param("ident"), services.FileMotionInput{
		Title:       req.Title,
		Description: req.Description,
		DocumentID:  req.DocumentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, motion)
}

// ListCaseMotionsHandler lists a case's motions, newest first
func ListCaseMotionsHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	motions, err := services.NewMotionService(db.DB).ListForCase(caseRecord.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, motions)
}

type reviewMotionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ReviewMotionHandler records a judge's ruling on a motion
func ReviewMotionHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	motionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid motion ID")
	}

	var req reviewMotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	motion, svcErr := services.NewMotionService(db.DB).Review(user, uint(motionID), req.Status, req.Notes)
	if svcErr != nil {
		return respondError(c, svcErr)
	}

	return c.JSON(http.StatusOK, motion)
}
