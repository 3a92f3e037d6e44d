package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"courtdesk/models"
	"courtdesk/services"

	"github.com/stretchr/testify/assert"
)

func TestScheduleHearingHandler_RawCaseNumberInBody(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Hearing test",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	// Request bodies carry the raw case number, slashes and all
	body := strings.NewReader(`{"case":"` + caseRecord.CaseNumber + `","date":"2026-09-14"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/calendar/hearings", body)
	setUser(c, registrar)

	assert.NoError(t, ScheduleHearingHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Case
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "2026-09-14", *updated.NextHearing)
}

func TestScheduleHearingHandler_MalformedDate(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Hearing test",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	body := strings.NewReader(`{"case":"` + caseRecord.CaseNumber + `","date":"2026-13-45"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/calendar/hearings", body)
	setUser(c, registrar)

	assert.NoError(t, ScheduleHearingHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec.Body.String()).Error.Code)
}

func TestGetCalendarHandler(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Listed case",
		CaseType: models.CaseTypeCriminal,
	})
	assert.NoError(t, err)
	assert.NoError(t, testDB.Model(&models.Case{}).Where("id = ?", caseRecord.ID).Update("next_hearing", "2026-09-14").Error)

	_, c, rec := setupEcho(http.MethodGet, "/api/calendar?date=2026-09-14", nil)
	setUser(c, registrar)

	assert.NoError(t, GetCalendarHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date  string        `json:"date"`
		Cases []models.Case `json:"cases"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Len(t, resp.Cases, 1)
	assert.Equal(t, caseRecord.ID, resp.Cases[0].ID)
}

func TestExportCalendarHandler(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Exported case",
		CaseType: models.CaseTypeCommercial,
	})
	assert.NoError(t, err)
	assert.NoError(t, testDB.Model(&models.Case{}).Where("id = ?", caseRecord.ID).Update("next_hearing", "2026-09-14").Error)

	_, c, rec := setupEcho(http.MethodGet, "/api/calendar/export?date=2026-09-14", nil)
	setUser(c, registrar)

	assert.NoError(t, ExportCalendarHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cause-list-2026-09-14.xlsx")
	assert.Greater(t, rec.Body.Len(), 0)
}
