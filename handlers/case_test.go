package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/stretchr/testify/assert"
)

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body string) errorResponse {
	var resp errorResponse
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestCreateCaseHandler(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	body := strings.NewReader(`{"title":"State v. Okafor","case_type":"Criminal","priority":"High"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/cases", body)
	setUser(c, registrar)

	assert.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Case
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.CaseStatusFiled, created.Status)
	assert.Equal(t, "State v. Okafor", created.Title)
	assert.True(t, strings.HasPrefix(created.CaseNumber, services.CaseNumberPrefix+"/"))
}

func TestCreateCaseHandler_ValidationError(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	body := strings.NewReader(`{"title":"Bad","case_type":"Maritime"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/cases", body)
	setUser(c, registrar)

	assert.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec.Body.String()).Error.Code)
}

func TestGetCaseHandler_DualIdentifier(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Adeyemi v. Balogun",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	// By numeric id
	_, c, rec := setupEcho(http.MethodGet, "/api/cases/1", nil)
	setUser(c, registrar)
	c.SetParamNames("ident")
	c.SetParamValues(fmt.Sprint(caseRecord.ID))

	assert.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var byID models.Case
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byID))
	assert.Equal(t, caseRecord.CaseNumber, byID.CaseNumber)

	// By percent-encoded case number
	encoded := url.PathEscape(caseRecord.CaseNumber)
	_, c, rec = setupEcho(http.MethodGet, "/api/cases/"+encoded, nil)
	setUser(c, registrar)
	c.SetParamNames("ident")
	c.SetParamValues(encoded)

	assert.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var byNumber models.Case
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byNumber))
	assert.Equal(t, caseRecord.ID, byNumber.ID)
}

func TestGetCaseHandler_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/99999", nil)
	setUser(c, registrar)
	c.SetParamNames("ident")
	c.SetParamValues("99999")

	assert.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec.Body.String()).Error.Code)
}

func TestApproveCaseHandler_SecondApprovalConflicts(t *testing.T) {
	testDB := setupTestDB(t)
	lawyer := createUser(t, testDB, "Lawyer", models.RoleLawyer)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(lawyer, services.CreateCaseInput{
		Title:    "Pending filing",
		CaseType: models.CaseTypeFamily,
	})
	assert.NoError(t, err)

	approve := func() (*httptest.ResponseRecorder, error) {
		_, c, rec := setupEcho(http.MethodPost, "/api/cases/x/approve", nil)
		setUser(c, registrar)
		c.SetParamNames("ident")
		c.SetParamValues(fmt.Sprint(caseRecord.ID))
		return rec, ApproveCaseHandler(c)
	}

	rec, err := approve()
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, err = approve()
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_APPROVED", decodeError(t, rec.Body.String()).Error.Code)
}

func TestAssignCourtHandler_GuardAdmitsJudge(t *testing.T) {
	testDB := setupTestDB(t)
	judge := createUser(t, testDB, "Judge", models.RoleJudge)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Awaiting court",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	body := strings.NewReader(fmt.Sprintf(`{"court":"Court 3","judge_id":%q}`, judge.ID))
	_, c, rec := setupEcho(http.MethodPost, "/api/cases/x/assign-court", body)
	setUser(c, judge)
	c.SetParamNames("ident")
	c.SetParamValues(fmt.Sprint(caseRecord.ID))

	// Run through the same role guard the route carries so a judge is
	// verified end to end, middleware included
	guarded := middleware.RequireRole(models.CourtAssignmentRoles...)(AssignCourtHandler)
	assert.NoError(t, guarded(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Case
	assert.NoError(t, testDB.First(&updated, caseRecord.ID).Error)
	assert.Equal(t, models.CaseStatusAssigned, updated.Status)
	assert.Equal(t, judge.ID, *updated.JudgeID)
}

func TestAssignCourtHandler_GuardBlocksCourtAdmin(t *testing.T) {
	testDB := setupTestDB(t)
	courtAdmin := createUser(t, testDB, "Court Admin", models.RoleCourtAdmin)
	judge := createUser(t, testDB, "Judge", models.RoleJudge)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Awaiting court",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	body := strings.NewReader(fmt.Sprintf(`{"court":"Court 3","judge_id":%q}`, judge.ID))
	_, c, rec := setupEcho(http.MethodPost, "/api/cases/x/assign-court", body)
	setUser(c, courtAdmin)
	c.SetParamNames("ident")
	c.SetParamValues(fmt.Sprint(caseRecord.ID))

	guarded := middleware.RequireRole(models.CourtAssignmentRoles...)(AssignCourtHandler)
	assert.NoError(t, guarded(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateCaseStatusHandler_InvalidStatus(t *testing.T) {
	testDB := setupTestDB(t)
	registrar := createUser(t, testDB, "Registrar", models.RoleRegistrar)

	caseRecord, err := services.NewCaseService(testDB).Create(registrar, services.CreateCaseInput{
		Title:    "Status test",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)

	body := strings.NewReader(`{"status":"Archived"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/cases/x/status", body)
	setUser(c, registrar)
	c.SetParamNames("ident")
	c.SetParamValues(fmt.Sprint(caseRecord.ID))

	assert.NoError(t, UpdateCaseStatusHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec.Body.String()).Error.Code)
}

func TestDeleteCaseHandler(t *testing.T) {
	testDB := setupTestDB(t)
	admin := createUser(t, testDB, "Admin", models.RoleAdmin)

	caseRecord, err := services.NewCaseService(testDB).Create(admin, services.CreateCaseInput{
		Title:    "Doomed case",
		CaseType: models.CaseTypeCommercial,
	})
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/x", nil)
	setUser(c, admin)
	c.SetParamNames("ident")
	c.SetParamValues(caseRecord.CaseNumber)

	assert.NoError(t, DeleteCaseHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	testDB.Model(&models.Case{}).Where("id = ?", caseRecord.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
