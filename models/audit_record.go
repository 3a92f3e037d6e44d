package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAuditImmutable is returned by the write-protection hooks below
var ErrAuditImmutable = errors.New("audit records are immutable")

// AuditAction represents the type of operation performed
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionApprove      AuditAction = "APPROVE"
	AuditActionReject       AuditAction = "REJECT"
	AuditActionAssign       AuditAction = "ASSIGN"
	AuditActionSign         AuditAction = "SIGN"
	AuditActionSchedule     AuditAction = "SCHEDULE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
	AuditActionLogin        AuditAction = "LOGIN"
	AuditActionLogout       AuditAction = "LOGOUT"
)

// AuditRecord is an immutable record of a portal operation
type AuditRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"created_at"`

	// Actor identification, denormalized for historical accuracy
	UserID   *string `gorm:"type:uuid;index:idx_audit_user" json:"user_id,omitempty"`
	UserName string  `gorm:"not null" json:"user_name"`
	UserRole string  `gorm:"not null" json:"user_role"`

	// Target resource
	ResourceType string `gorm:"not null;index:idx_audit_resource" json:"resource_type"`
	ResourceID   string `gorm:"not null;index:idx_audit_resource" json:"resource_id"`
	ResourceName string `json:"resource_name,omitempty"`

	// Operation details
	Action  AuditAction `gorm:"not null;index:idx_audit_action" json:"action"`
	Details string      `gorm:"type:text" json:"details,omitempty"` // JSON encoded
}

// BeforeUpdate prevents modification of audit records (immutability)
func (a *AuditRecord) BeforeUpdate(tx *gorm.DB) error {
	return ErrAuditImmutable
}

// BeforeDelete prevents deletion of audit records (immutability)
func (a *AuditRecord) BeforeDelete(tx *gorm.DB) error {
	return ErrAuditImmutable
}

// TableName specifies the table name
func (AuditRecord) TableName() string {
	return "audit_records"
}
