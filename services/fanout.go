package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"courtdesk/models"

	"gorm.io/gorm"
)

// Fan-out payloads. Each successful transition enqueues a timeline entry,
// zero or more notifications, and one audit record as outbox tasks inside
// the primary transaction. The outbox worker executes them afterwards, so a
// slow or failing secondary write never blocks or rolls back the transition.

type TimelinePayload struct {
	CaseID      uint      `json:"case_id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedByID string    `json:"created_by_id"`
}

type NotificationPayload struct {
	UserID       string `json:"user_id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	ResourceType string `json:"resource_type,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`
}

type AuditPayload struct {
	UserID       string                 `json:"user_id"`
	UserName     string                 `json:"user_name"`
	UserRole     string                 `json:"user_role"`
	Action       models.AuditAction     `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id"`
	ResourceName string                 `json:"resource_name,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// EnqueueTimeline records a timeline fan-out task. Failures are logged and
// swallowed so the primary transition is never blocked.
func EnqueueTimeline(tx *gorm.DB, p TimelinePayload) {
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	enqueue(tx, models.OutboxKindTimeline, p)
}

// EnqueueNotification records a notification fan-out task
func EnqueueNotification(tx *gorm.DB, p NotificationPayload) {
	if p.UserID == "" {
		return
	}
	enqueue(tx, models.OutboxKindNotification, p)
}

// EnqueueAudit records an audit fan-out task
func EnqueueAudit(tx *gorm.DB, p AuditPayload) {
	enqueue(tx, models.OutboxKindAudit, p)
}

// AuditActor builds the actor fields of an AuditPayload from a user
func AuditActor(actor *models.User, action models.AuditAction, resourceType string, resourceID uint, resourceName string) AuditPayload {
	return AuditPayload{
		UserID:       actor.ID,
		UserName:     actor.Name,
		UserRole:     actor.Role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   fmt.Sprint(resourceID),
		ResourceName: resourceName,
	}
}

func enqueue(tx *gorm.DB, kind string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[FANOUT] Failed to marshal %s payload: %v", kind, err)
		return
	}

	task := models.OutboxTask{
		Kind:    kind,
		Payload: string(data),
		Status:  models.OutboxStatusPending,
	}
	if err := tx.Create(&task).Error; err != nil {
		log.Printf("[FANOUT] Failed to enqueue %s task: %v", kind, err)
	}
}
