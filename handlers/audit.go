package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"courtdesk/db"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

// GetAuditRecordsHandler returns paginated audit records with filters
func GetAuditRecordsHandler(c echo.Context) error {
	filters := services.AuditFilters{
		UserID:       c.QueryParam("user_id"),
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
	}

	if from := c.QueryParam("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := c.QueryParam("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			// Include the whole day
			filters.DateTo = t.Add(24*time.Hour - time.Second)
		}
	}

	page := 1
	pageSize := 50
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if sizeParam := c.QueryParam("page_size"); sizeParam != "" {
		if s, err := strconv.Atoi(sizeParam); err == nil && s > 0 && s <= 200 {
			pageSize = s
		}
	}

	records, total, err := services.GetAuditRecords(db.DB, filters, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch audit records")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": records,
		"pagination": map[string]interface{}{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

// GetCaseAuditHistoryHandler returns the audit trail for one case
func GetCaseAuditHistoryHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	records, err := services.GetResourceAuditHistory(db.DB, "Case", fmt.Sprint(caseRecord.ID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch audit history")
	}

	return c.JSON(http.StatusOK, records)
}
