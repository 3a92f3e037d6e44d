package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeCaseUpdate = "CASE_UPDATE"
	NotificationTypeAssignment = "ASSIGNMENT"
	NotificationTypeMotion     = "MOTION"
	NotificationTypeOrder      = "ORDER"
	NotificationTypeHearing    = "HEARING"
	NotificationTypeSystem     = "SYSTEM"
)

// Notification is an in-app message addressed to one user. Only the read
// flag ever changes after creation.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Type    string `gorm:"not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	// Back-reference to the resource the notification is about
	ResourceType string `json:"resource_type,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`

	// Read tracking
	ReadAt *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
