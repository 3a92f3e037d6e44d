package jobs

import (
	"testing"

	"courtdesk/config"
	"courtdesk/db"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.Migrate(conn))
	return conn
}

func testConfig() *config.Config {
	return &config.Config{EmailTestMode: true}
}

func outboxTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
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

// Walks a case through filing, approval, court assignment, lawyer
// assignment and a motion disposition, then drains the outbox and checks
// the fan-out landed.
func TestProcessOutbox_CaseLifecycle(t *testing.T) {
	db := setupOutboxTestDB(t)
	cfg := testConfig()

	lawyer := outboxTestUser(t, db, "Lawyer", models.RoleLawyer)
	registrar := outboxTestUser(t, db, "Registrar", models.RoleRegistrar)
	judge := outboxTestUser(t, db, "Judge", models.RoleJudge)

	caseService := services.NewCaseService(db)

	caseRecord, err := caseService.Create(lawyer, services.CreateCaseInput{
		Title:    "Adeyemi v. Balogun",
		CaseType: models.CaseTypeCivil,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.CaseStatusPendingApproval, caseRecord.Status)

	_, err = caseService.Approve(registrar, caseRecord.CaseNumber)
	assert.NoError(t, err)

	_, err = caseService.AssignToCourt(registrar, caseRecord.CaseNumber, "Court 5", judge.ID)
	assert.NoError(t, err)

	_, err = caseService.AssignLawyer(registrar, caseRecord.CaseNumber, lawyer.ID)
	assert.NoError(t, err)

	motion, err := services.NewMotionService(db).File(lawyer, caseRecord.CaseNumber, services.FileMotionInput{
		Title: "Motion for interim relief",
	})
	assert.NoError(t, err)

	_, err = services.NewMotionService(db).Review(judge, motion.ID, models.MotionStatusApproved, "Granted")
	assert.NoError(t, err)

	// Nothing has landed yet; it is all parked in the outbox
	var timelineCount int64
	db.Model(&models.TimelineEvent{}).Count(&timelineCount)
	assert.EqualValues(t, 0, timelineCount)

	ProcessOutbox(db, cfg)

	// Every transition left a timeline entry
	var events []models.TimelineEvent
	assert.NoError(t, db.Where("case_id = ?", caseRecord.ID).Find(&events).Error)
	assert.GreaterOrEqual(t, len(events), 6)

	categories := map[string]bool{}
	for _, event := range events {
		categories[event.Category] = true
	}
	assert.True(t, categories[models.TimelineCategoryCase])
	assert.True(t, categories[models.TimelineCategoryAssignment])
	assert.True(t, categories[models.TimelineCategoryMotion])

	// The filer was notified of the approval, the judge of the assignment
	var lawyerNotifications, judgeNotifications int64
	db.Model(&models.Notification{}).Where("user_id = ?", lawyer.ID).Count(&lawyerNotifications)
	db.Model(&models.Notification{}).Where("user_id = ?", judge.ID).Count(&judgeNotifications)
	assert.Greater(t, lawyerNotifications, int64(0))
	assert.Greater(t, judgeNotifications, int64(0))

	// Audit records cover the lifecycle actions
	var auditActions []string
	db.Model(&models.AuditRecord{}).Pluck("action", &auditActions)
	assert.Contains(t, auditActions, string(models.AuditActionCreate))
	assert.Contains(t, auditActions, string(models.AuditActionApprove))
	assert.Contains(t, auditActions, string(models.AuditActionAssign))

	// All tasks are done
	var pendingTasks int64
	db.Model(&models.OutboxTask{}).Where("status = ?", models.OutboxStatusPending).Count(&pendingTasks)
	assert.EqualValues(t, 0, pendingTasks)
}

func TestProcessOutbox_MalformedTaskRetriesThenFails(t *testing.T) {
	db := setupOutboxTestDB(t)
	cfg := testConfig()

	task := models.OutboxTask{
		Kind:    models.OutboxKindTimeline,
		Payload: "not json",
		Status:  models.OutboxStatusPending,
	}
	assert.NoError(t, db.Create(&task).Error)

	for i := 1; i < MaxOutboxAttempts; i++ {
		ProcessOutbox(db, cfg)

		var current models.OutboxTask
		assert.NoError(t, db.First(&current, task.ID).Error)
		assert.Equal(t, models.OutboxStatusPending, current.Status)
		assert.Equal(t, i, current.Attempts)
		assert.NotEmpty(t, current.LastError)
	}

	// The final attempt parks it as failed
	ProcessOutbox(db, cfg)

	var failed models.OutboxTask
	assert.NoError(t, db.First(&failed, task.ID).Error)
	assert.Equal(t, models.OutboxStatusFailed, failed.Status)
	assert.Equal(t, MaxOutboxAttempts, failed.Attempts)

	// A failed task is never retried again
	ProcessOutbox(db, cfg)
	var after models.OutboxTask
	assert.NoError(t, db.First(&after, task.ID).Error)
	assert.Equal(t, MaxOutboxAttempts, after.Attempts)
}

func TestProcessOutbox_UnknownKindFails(t *testing.T) {
	db := setupOutboxTestDB(t)

	task := models.OutboxTask{
		Kind:    "carrier-pigeon",
		Payload: "{}",
		Status:  models.OutboxStatusPending,
	}
	assert.NoError(t, db.Create(&task).Error)

	ProcessOutbox(db, testConfig())

	var current models.OutboxTask
	assert.NoError(t, db.First(&current, task.ID).Error)
	assert.Equal(t, 1, current.Attempts)
	assert.Contains(t, current.LastError, "carrier-pigeon")
}

func TestProcessOutbox_DispatchesNotificationWithEmailCopy(t *testing.T) {
	db := setupOutboxTestDB(t)
	user := outboxTestUser(t, db, "Judge", models.RoleJudge)

	registrar := outboxTestUser(t, db, "Registrar", models.RoleRegistrar)
	caseRecord, err := services.NewCaseService(db).Create(registrar, services.CreateCaseInput{
		Title:    "State v. Okafor",
		CaseType: models.CaseTypeCriminal,
	})
	assert.NoError(t, err)

	_, err = services.NewCaseService(db).AssignToCourt(registrar, caseRecord.CaseNumber, "Court 1", user.ID)
	assert.NoError(t, err)

	// Test mode logs the email instead of calling out; the in-app
	// notification must still be created
	ProcessOutbox(db, testConfig())

	var notifications []models.Notification
	assert.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "New case assignment", notifications[0].Title)
	assert.Equal(t, "Case", notifications[0].ResourceType)
}
