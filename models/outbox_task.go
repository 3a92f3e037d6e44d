package models

import (
	"time"
)

// Outbox task kinds
const (
	OutboxKindTimeline     = "timeline"
	OutboxKindNotification = "notification"
	OutboxKindAudit        = "audit"
)

// Outbox task statuses
const (
	OutboxStatusPending = "pending"
	OutboxStatusDone    = "done"
	OutboxStatusFailed  = "failed"
)

// OutboxTask is a durable fan-out task. Pipelines enqueue tasks in the same
// transaction as the primary write; the outbox worker executes them
// afterwards. A task that keeps failing is marked failed and kept for
// inspection rather than silently dropped.
type OutboxTask struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Kind    string `gorm:"not null;index" json:"kind"`
	Payload string `gorm:"type:text;not null" json:"payload"`

	Status      string     `gorm:"not null;default:pending;index" json:"status"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	LastError   string     `gorm:"type:text" json:"last_error,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func (OutboxTask) TableName() string {
	return "outbox_tasks"
}
