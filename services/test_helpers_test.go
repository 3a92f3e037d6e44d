package services

import (
	"testing"

	"courtdesk/db"
	"courtdesk/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.Migrate(conn))
	return conn
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    uuid.New().String() + "@test.local",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func createTestCase(t *testing.T, db *gorm.DB, creator *models.User, status string) *models.Case {
	number, err := EnsureUniqueCaseNumber(db)
	assert.NoError(t, err)

	caseRecord := &models.Case{
		CaseNumber:  number,
		Title:       "Test case",
		CaseType:    models.CaseTypeCivil,
		Priority:    models.CasePriorityNormal,
		Status:      status,
		CreatedByID: creator.ID,
	}
	assert.NoError(t, db.Create(caseRecord).Error)
	return caseRecord
}

func countOutboxTasks(t *testing.T, db *gorm.DB, kind string) int64 {
	var count int64
	assert.NoError(t, db.Model(&models.OutboxTask{}).Where("kind = ?", kind).Count(&count).Error)
	return count
}
