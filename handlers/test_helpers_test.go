package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"courtdesk/config"
	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates tests from each other
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	assert.NoError(t, db.Migrate(testDB))

	// The handlers read the global connection
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

func createUser(t *testing.T, testDB *gorm.DB, name, role string) *models.User {
	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    uuid.New().String() + "@test.local",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)
	return user
}

func setUser(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
}
