package models

import (
	"time"

	"gorm.io/gorm"
)

// Motion status constants
const (
	MotionStatusPending  = "Pending"
	MotionStatusApproved = "Approved"
	MotionStatusRejected = "Rejected"
)

// Motion is a formal request filed against a case. Disposition is one-way:
// an Approved or Rejected motion is never reopened, a new Motion is filed
// instead.
type Motion struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Case        *Case     `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FiledByID   string    `gorm:"type:uuid;not null" json:"filed_by_id"`
	FiledBy     *User     `gorm:"foreignKey:FiledByID" json:"filed_by,omitempty"`
	FiledDate   time.Time `gorm:"not null" json:"filed_date"`

	Status string `gorm:"not null;default:Pending;index" json:"status"`

	// Optional supporting document
	DocumentID *uint         `json:"document_id,omitempty"`
	Document   *CaseDocument `gorm:"foreignKey:DocumentID" json:"document,omitempty"`

	// Disposition
	ReviewedByID *string    `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedBy   *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate hook to set the filed date
func (m *Motion) BeforeCreate(tx *gorm.DB) error {
	if m.FiledDate.IsZero() {
		m.FiledDate = time.Now()
	}
	return nil
}

func (Motion) TableName() string {
	return "motions"
}

// IsDisposed checks if the motion has been approved or rejected
func (m *Motion) IsDisposed() bool {
	return m.Status == MotionStatusApproved || m.Status == MotionStatusRejected
}

// IsValidMotionDecision checks that a disposition target is exactly
// Approved or Rejected
func IsValidMotionDecision(status string) bool {
	return status == MotionStatusApproved || status == MotionStatusRejected
}
