package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrTimelineImmutable is returned by the update-protection hook below
var ErrTimelineImmutable = errors.New("timeline events are append-only")

// Timeline category tags
const (
	TimelineCategoryCase       = "case"
	TimelineCategoryAssignment = "assignment"
	TimelineCategoryMotion     = "motion"
	TimelineCategoryOrder      = "order"
	TimelineCategoryHearing    = "hearing"
)

// TimelineEvent is an append-only narrative log entry attached to a case.
// Entries are never mutated or deleted under normal operation; the only
// removal path is the cascade when the owning case is deleted.
type TimelineEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"not null;index" json:"category"`

	CreatedByID string `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// BeforeUpdate prevents modification of timeline entries
func (e *TimelineEvent) BeforeUpdate(tx *gorm.DB) error {
	return ErrTimelineImmutable
}

func (TimelineEvent) TableName() string {
	return "timeline_events"
}
