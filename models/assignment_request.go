package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment request status constants
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AssignmentRequest is a lawyer's bid to represent an unassigned case.
// At most one pending request may exist per (case, lawyer) pair.
type AssignmentRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID   uint   `gorm:"not null;index" json:"case_id"`
	Case     *Case  `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	LawyerID string `gorm:"type:uuid;not null;index" json:"lawyer_id"`
	Lawyer   *User  `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	Status      string     `gorm:"not null;default:pending;index" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ReviewedByID *string   `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedBy  *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// BeforeCreate hook to set the requested timestamp
func (r *AssignmentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now()
	}
	return nil
}

func (AssignmentRequest) TableName() string {
	return "assignment_requests"
}

// IsPending checks if the request is awaiting review
func (r *AssignmentRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
