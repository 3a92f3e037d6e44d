package services

import (
	"fmt"
	"testing"
	"time"

	"courtdesk/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCaseNumber(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	year := time.Now().Year()

	// 1. First case of the year
	number, err := GenerateCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d/001", CaseNumberPrefix, year), number)

	// 2. Create it and check the sequence increments
	db.Create(&models.Case{
		CaseNumber:  number,
		Title:       "First",
		CaseType:    models.CaseTypeCivil,
		Status:      models.CaseStatusFiled,
		CreatedByID: creator.ID,
	})

	number2, err := GenerateCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d/002", CaseNumberPrefix, year), number2)
}

func TestGenerateCaseNumber_IgnoresOtherYears(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	year := time.Now().Year()

	// A case filed in a previous year must not affect this year's count
	db.Create(&models.Case{
		CaseNumber:  fmt.Sprintf("%s/%d/042", CaseNumberPrefix, year-1),
		Title:       "Old",
		CaseType:    models.CaseTypeCivil,
		Status:      models.CaseStatusClosed,
		CreatedByID: creator.ID,
	})

	number, err := GenerateCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d/001", CaseNumberPrefix, year), number)
}

func TestGenerateCaseNumber_SequencePastPadding(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	year := time.Now().Year()

	// Once the sequence outgrows the zero padding, "999" sorts above "1000"
	// lexicographically. The generator must still find 1000 as the maximum.
	for _, seq := range []int{999, 1000} {
		db.Create(&models.Case{
			CaseNumber:  fmt.Sprintf("%s/%d/%03d", CaseNumberPrefix, year, seq),
			Title:       fmt.Sprintf("Filing %d", seq),
			CaseType:    models.CaseTypeCivil,
			Status:      models.CaseStatusFiled,
			CreatedByID: creator.ID,
		})
	}

	number, err := GenerateCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d/1001", CaseNumberPrefix, year), number)

	unique, err := EnsureUniqueCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, number, unique)
}

func TestEnsureUniqueCaseNumber(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	year := time.Now().Year()

	number, err := EnsureUniqueCaseNumber(db)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%d/001", CaseNumberPrefix, year), number)

	db.Create(&models.Case{
		CaseNumber:  number,
		Title:       "First",
		CaseType:    models.CaseTypeCriminal,
		Status:      models.CaseStatusFiled,
		CreatedByID: creator.ID,
	})

	number2, err := EnsureUniqueCaseNumber(db)
	assert.NoError(t, err)
	assert.NotEqual(t, number, number2)
	assert.Equal(t, fmt.Sprintf("%s/%d/002", CaseNumberPrefix, year), number2)
}
