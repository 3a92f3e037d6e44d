package handlers

import (
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

type createCaseRequest struct {
	Title       string `json:"title"`
	CaseType    string `json:"case_type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// CreateCaseHandler files a new case
func CreateCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewCaseService(db.DB).Create(user, services.CreateCaseInput{
		Title:       req.Title,
		CaseType:    req.CaseType,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, caseRecord)
}

// GetCasesHandler returns a list of cases with filtering and pagination
func GetCasesHandler(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)

	status := c.QueryParam("status")
	caseType := c.QueryParam("type")
	keyword := c.QueryParam("keyword")

	page := 1
	limit := 20
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	query := db.DB.Model(&models.Case{})

	// Lawyers see their own cases plus unrepresented ones they could bid on
	if currentUser.Role == models.RoleLawyer {
		query = query.Where("lawyer_id = ? OR lawyer_id IS NULL", currentUser.ID)
	}

	if status != "" && models.IsValidCaseStatus(status) {
		query = query.Where("status = ?", status)
	}
	if caseType != "" && models.IsValidCaseType(caseType) {
		query = query.Where("case_type = ?", caseType)
	}
	if keyword != "" {
		keyword = "%" + keyword + "%"
		query = query.Where(
			db.DB.Where("case_number LIKE ?", keyword).
				Or("title LIKE ?", keyword).
				Or("description LIKE ?", keyword),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count cases")
	}

	offset := (page - 1) * limit
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	var cases []models.Case
	if err := query.
		Preload("Judge").
		Preload("Lawyer").
		Preload("CreatedBy").
		Order("filed_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&cases).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch cases")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": cases,
		"pagination": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetCaseHandler returns one case, resolved by numeric id or case number
func GetCaseHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	// Reload with relationships
	var full models.Case
	if err := db.DB.
		Preload("Judge").
		Preload("Lawyer").
		Preload("CreatedBy").
		Preload("Parties").
		Preload("Documents").
		First(&full, caseRecord.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch case")
	}

	return c.JSON(http.StatusOK, full)
}

type updateCaseRequest struct {
	Title       *string `json:"title"`
	Priority    *string `json:"priority"`
	Description *string `json:"description"`
	NextHearing *string `json:"next_hearing"`
}

// UpdateCaseHandler edits case detail fields. A next_hearing value is
// routed through the hearing scheduler so both entry points share one
// write path.
func UpdateCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	ident := c.Param("ident")

	var req updateCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewCaseService(db.DB).Update(user, ident, services.UpdateCaseInput{
		Title:       req.Title,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	if req.NextHearing != nil {
		caseRecord, err = services.NewHearingService(db.DB).SetNextHearing(user, ident, *req.NextHearing)
		if err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(http.StatusOK, caseRecord)
}

// DeleteCaseHandler removes a case and its dependents
func DeleteCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	if err := services.NewCaseService(db.DB).Delete(user, c.Param("ident")); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ApproveCaseHandler approves a pending case for filing
func ApproveCaseHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	caseRecord, err := services.NewCaseService(db.DB).Approve(user, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

type assignCourtRequest struct {
	Court   string `json:"court"`
	JudgeID string `json:"judge_id"`
}

// AssignCourtHandler assigns a case to a court room and presiding judge
func AssignCourtHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req assignCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewCaseService(db.DB).AssignToCourt(user, c.Param("ident"), req.Court, req.JudgeID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateCaseStatusHandler applies an administrative status override
func UpdateCaseStatusHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewCaseService(db.DB).UpdateStatus(user, c.Param("ident"), req.Status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

type assignLawyerRequest struct {
	LawyerID string `json:"lawyer_id"`
}

// AssignLawyerHandler is the privileged direct lawyer assignment
func AssignLawyerHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req assignLawyerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.NewCaseService(db.DB).AssignLawyer(user, c.Param("ident"), req.LawyerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

// GetCaseTimelineHandler returns a case's timeline, newest first
func GetCaseTimelineHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	events, err := services.ListTimeline(db.DB, caseRecord.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, events)
}
