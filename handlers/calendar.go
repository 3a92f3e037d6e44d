package handlers

import (
	"fmt"
	"net/http"
	"time"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

type scheduleHearingRequest struct {
	Case string `json:"case"`
	Date string `json:"date"`
}

// ScheduleHearingHandler sets a case's next hearing date. The case field
// accepts a numeric ID or a case number, raw or percent-encoded.
func ScheduleHearingHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req scheduleHearingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewHearingService(db.DB).SetNextHearing(user, req.Case, req.Date)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

// GetCalendarHandler returns the cause list for a date (default today)
func GetCalendarHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format(services.HearingDateLayout)
	}
	if !services.IsValidHearingDate(date) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	cases, err := services.NewHearingService(db.DB).HearingsOn(date)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":  date,
		"cases": cases,
	})
}

// ExportCalendarHandler downloads the cause list for a date as a
// spreadsheet
func ExportCalendarHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format(services.HearingDateLayout)
	}
	if !services.IsValidHearingDate(date) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	data, err := services.ExportCauseList(db.DB, date)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("cause-list-%s.xlsx", date)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
