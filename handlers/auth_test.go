package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLoginPostHandler(t *testing.T) {
	testDB := setupTestDB(t)

	hashed, err := services.HashPassword("correct horse battery")
	assert.NoError(t, err)
	user := createUser(t, testDB, "Registrar", models.RoleRegistrar)
	assert.NoError(t, testDB.Model(user).Update("password", hashed).Error)

	body := strings.NewReader(`{"email":"` + user.Email + `","password":"correct horse battery"}`)
	_, c, rec := setupEcho(http.MethodPost, "/login", body)

	assert.NoError(t, LoginPostHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Session cookie is set
	var sessionCookie bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			sessionCookie = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, sessionCookie)

	// Password never leaks in the response
	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, string(resp["user"]), hashed)
}

func TestLoginPostHandler_WrongPassword(t *testing.T) {
	testDB := setupTestDB(t)

	hashed, err := services.HashPassword("right")
	assert.NoError(t, err)
	user := createUser(t, testDB, "Registrar", models.RoleRegistrar)
	assert.NoError(t, testDB.Model(user).Update("password", hashed).Error)

	body := strings.NewReader(`{"email":"` + user.Email + `","password":"wrong"}`)
	_, c, _ := setupEcho(http.MethodPost, "/login", body)

	err = LoginPostHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestLoginPostHandler_InactiveAccount(t *testing.T) {
	testDB := setupTestDB(t)

	hashed, err := services.HashPassword("secret123")
	assert.NoError(t, err)
	user := createUser(t, testDB, "Former Clerk", models.RoleClerk)
	assert.NoError(t, testDB.Model(user).Updates(map[string]interface{}{
		"password":  hashed,
		"is_active": false,
	}).Error)

	body := strings.NewReader(`{"email":"` + user.Email + `","password":"secret123"}`)
	_, c, _ := setupEcho(http.MethodPost, "/login", body)

	err = LoginPostHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestGetCurrentUserHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createUser(t, testDB, "Judge", models.RoleJudge)

	_, c, rec := setupEcho(http.MethodGet, "/api/me", nil)
	setUser(c, user)

	assert.NoError(t, GetCurrentUserHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, models.RoleJudge, me.Role)
}
