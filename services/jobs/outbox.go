package jobs

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"courtdesk/config"
	"courtdesk/models"
	"courtdesk/services"

	"gorm.io/gorm"
)

const (
	// MaxOutboxAttempts is the retry limit before a task is parked as failed
	MaxOutboxAttempts = 5
	// outboxBatchSize bounds one polling pass
	outboxBatchSize = 50
)

// ProcessOutbox executes pending fan-out tasks. The primary transitions
// that enqueued them have already committed; a task failure here is logged,
// retried on the next pass, and eventually parked as failed. It never
// touches the primary records.
func ProcessOutbox(database *gorm.DB, cfg *config.Config) {
	var tasks []models.OutboxTask
	err := database.Where("status = ?", models.OutboxStatusPending).
		Order("id ASC").
		Limit(outboxBatchSize).
		Find(&tasks).Error
	if err != nil {
		log.Printf("[OUTBOX] Failed to fetch pending tasks: %v", err)
		return
	}

	for i := range tasks {
		task := &tasks[i]
		if err := dispatchTask(database, cfg, task); err != nil {
			task.Attempts++
			updates := map[string]interface{}{
				"attempts":   task.Attempts,
				"last_error": err.Error(),
			}
			if task.Attempts >= MaxOutboxAttempts {
				updates["status"] = models.OutboxStatusFailed
				log.Printf("[OUTBOX] Task %d (%s) failed permanently after %d attempts: %v", task.ID, task.Kind, task.Attempts, err)
			} else {
				log.Printf("[OUTBOX] Task %d (%s) failed (attempt %d): %v", task.ID, task.Kind, task.Attempts, err)
			}
			database.Model(task).Updates(updates)
			continue
		}

		now := time.Now()
		database.Model(task).Updates(map[string]interface{}{
			"status":       models.OutboxStatusDone,
			"attempts":     task.Attempts + 1,
			"processed_at": now,
		})
	}
}

// RunOutboxWorker polls the outbox until the stop channel closes
func RunOutboxWorker(database *gorm.DB, cfg *config.Config, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ProcessOutbox(database, cfg)
		case <-stop:
			return
		}
	}
}

func dispatchTask(database *gorm.DB, cfg *config.Config, task *models.OutboxTask) error {
	switch task.Kind {
	case models.OutboxKindTimeline:
		return dispatchTimeline(database, task.Payload)
	case models.OutboxKindNotification:
		return dispatchNotification(database, cfg, task.Payload)
	case models.OutboxKindAudit:
		return dispatchAudit(database, task.Payload)
	default:
		return fmt.Errorf("unknown outbox task kind %q", task.Kind)
	}
}

func dispatchTimeline(database *gorm.DB, payload string) error {
	var p services.TimelinePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return fmt.Errorf("malformed timeline payload: %w", err)
	}

	event := models.TimelineEvent{
		CaseID:      p.CaseID,
		Date:        p.Date,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		CreatedByID: p.CreatedByID,
	}
	return database.Create(&event).Error
}

func dispatchNotification(database *gorm.DB, cfg *config.Config, payload string) error {
	var p services.NotificationPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return fmt.Errorf("malformed notification payload: %w", err)
	}

	notification := models.Notification{
		UserID:       p.UserID,
		Type:         p.Type,
		Title:        p.Title,
		Message:      p.Message,
		ResourceType: p.ResourceType,
		ResourceID:   p.ResourceID,
	}
	if err := database.Create(&notification).Error; err != nil {
		return err
	}

	// Email copy is best-effort on top of the in-app notification
	var user models.User
	if err := database.First(&user, "id = ?", p.UserID).Error; err == nil && user.Email != "" {
		email := services.BuildNotificationEmail(user.Email, p.Title, p.Message)
		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("[OUTBOX] Failed to email notification %d to %s: %v", notification.ID, user.Email, err)
		}
	}
	return nil
}

func dispatchAudit(database *gorm.DB, payload string) error {
	var p services.AuditPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return fmt.Errorf("malformed audit payload: %w", err)
	}

	details := ""
	if len(p.Details) > 0 {
		if data, err := json.Marshal(p.Details); err == nil {
			details = string(data)
		}
	}

	record := models.AuditRecord{
		UserID:       ptrIfNotEmpty(p.UserID),
		UserName:     p.UserName,
		UserRole:     p.UserRole,
		Action:       p.Action,
		ResourceType: p.ResourceType,
		ResourceID:   p.ResourceID,
		ResourceName: p.ResourceName,
		Details:      details,
	}
	return database.Create(&record).Error
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
