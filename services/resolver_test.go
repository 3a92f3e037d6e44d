package services

import (
	"fmt"
	"net/url"
	"testing"

	"courtdesk/apperrors"
	"courtdesk/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveCase_ByNumericID(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	caseRecord := createTestCase(t, db, creator, models.CaseStatusFiled)

	resolved, err := ResolveCase(db, fmt.Sprint(caseRecord.ID))
	assert.NoError(t, err)
	assert.Equal(t, caseRecord.ID, resolved.ID)
	assert.Equal(t, caseRecord.CaseNumber, resolved.CaseNumber)
}

func TestResolveCase_ByCaseNumber(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	caseRecord := createTestCase(t, db, creator, models.CaseStatusFiled)

	resolved, err := ResolveCase(db, caseRecord.CaseNumber)
	assert.NoError(t, err)
	assert.Equal(t, caseRecord.ID, resolved.ID)
}

func TestResolveCase_PercentEncoded(t *testing.T) {
	db := setupServiceTestDB(t)
	creator := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	caseRecord := createTestCase(t, db, creator, models.CaseStatusFiled)

	// KDH/2026/001 arrives as KDH%2F2026%2F001 in a path segment
	encoded := url.PathEscape(caseRecord.CaseNumber)
	assert.Contains(t, encoded, "%2F")

	resolved, err := ResolveCase(db, encoded)
	assert.NoError(t, err)
	assert.Equal(t, caseRecord.ID, resolved.ID)
}

func TestResolveCase_NotFound(t *testing.T) {
	db := setupServiceTestDB(t)

	_, err := ResolveCase(db, "99999")
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = ResolveCase(db, "KDH/2026/999")
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestResolveCase_EmptyIdent(t *testing.T) {
	db := setupServiceTestDB(t)

	_, err := ResolveCase(db, "   ")
	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}
