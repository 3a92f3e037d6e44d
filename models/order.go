package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusDraft  = "Draft"
	OrderStatusSigned = "Signed"
)

// Order is a judicial directive drafted for a case. Signed is terminal:
// signing an already-signed order is an error, never a silent no-op.
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Case        *Case     `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	DraftedByID string    `gorm:"type:uuid;not null" json:"drafted_by_id"`
	DraftedBy   *User     `gorm:"foreignKey:DraftedByID" json:"drafted_by,omitempty"`
	DraftedDate time.Time `gorm:"not null" json:"drafted_date"`

	Status     string     `gorm:"not null;default:Draft;index" json:"status"`
	SignedByID *string    `gorm:"type:uuid" json:"signed_by_id,omitempty"`
	SignedBy   *User      `gorm:"foreignKey:SignedByID" json:"signed_by,omitempty"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
}

// BeforeCreate hook to set the drafted date
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.DraftedDate.IsZero() {
		o.DraftedDate = time.Now()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// IsSigned checks if the order has been signed
func (o *Order) IsSigned() bool {
	return o.Status == OrderStatusSigned
}
