package services

import (
	"testing"

	"courtdesk/apperrors"
	"courtdesk/models"

	"github.com/stretchr/testify/assert"
)

func TestSetNextHearing(t *testing.T) {
	f := motionTestFixture(t)

	updated, err := NewHearingService(f.DB).SetNextHearing(f.Registrar, f.Case.CaseNumber, "2026-09-14")
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-14", *updated.NextHearing)

	var persisted models.Case
	assert.NoError(t, f.DB.First(&persisted, f.Case.ID).Error)
	assert.Equal(t, "2026-09-14", *persisted.NextHearing)

	// Judge and lawyer are both notified
	assert.EqualValues(t, 2, countOutboxTasks(t, f.DB, models.OutboxKindNotification))
}

func TestSetNextHearing_Reschedule(t *testing.T) {
	f := motionTestFixture(t)
	svc := NewHearingService(f.DB)

	_, err := svc.SetNextHearing(f.Judge, f.Case.CaseNumber, "2026-09-14")
	assert.NoError(t, err)

	updated, err := svc.SetNextHearing(f.Judge, f.Case.CaseNumber, "2026-10-02")
	assert.NoError(t, err)
	assert.Equal(t, "2026-10-02", *updated.NextHearing)
}

func TestSetNextHearing_MalformedDates(t *testing.T) {
	f := motionTestFixture(t)
	svc := NewHearingService(f.DB)

	for _, date := range []string{"2026-13-45", "14/09/2026", "tomorrow", "2026-9-1", ""} {
		_, err := svc.SetNextHearing(f.Registrar, f.Case.CaseNumber, date)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "date %q should be rejected", date)
	}

	// The stored value is untouched
	var persisted models.Case
	assert.NoError(t, f.DB.First(&persisted, f.Case.ID).Error)
	assert.Nil(t, persisted.NextHearing)
}

func TestSetNextHearing_LawyerForbidden(t *testing.T) {
	f := motionTestFixture(t)

	_, err := NewHearingService(f.DB).SetNextHearing(f.Lawyer, f.Case.CaseNumber, "2026-09-14")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestHearingsOn(t *testing.T) {
	db := setupServiceTestDB(t)
	registrar := createTestUser(t, db, "Registrar", models.RoleRegistrar)
	svc := NewHearingService(db)

	heard := createTestCase(t, db, registrar, models.CaseStatusInProgress)
	otherDay := createTestCase(t, db, registrar, models.CaseStatusInProgress)
	concluded := createTestCase(t, db, registrar, models.CaseStatusDisposed)

	assert.NoError(t, db.Model(heard).Update("next_hearing", "2026-09-14").Error)
	assert.NoError(t, db.Model(otherDay).Update("next_hearing", "2026-09-15").Error)
	assert.NoError(t, db.Model(concluded).Update("next_hearing", "2026-09-14").Error)

	cases, err := svc.HearingsOn("2026-09-14")
	assert.NoError(t, err)
	assert.Len(t, cases, 1)
	assert.Equal(t, heard.ID, cases[0].ID)
}

func TestHearingsOn_InvalidDate(t *testing.T) {
	db := setupServiceTestDB(t)

	_, err := NewHearingService(db).HearingsOn("not-a-date")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}
