package models

import (
	"time"

	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusPendingApproval = "Pending Approval"
	CaseStatusFiled           = "Filed"
	CaseStatusAssigned        = "Assigned"
	CaseStatusInProgress      = "In Progress"
	CaseStatusPendingJudgment = "Pending Judgment"
	CaseStatusAdjourned       = "Adjourned"
	CaseStatusReview          = "Review"
	CaseStatusClosed          = "Closed"
	CaseStatusDisposed        = "Disposed"
)

// Case type constants
const (
	CaseTypeCriminal   = "Criminal"
	CaseTypeCivil      = "Civil"
	CaseTypeFamily     = "Family"
	CaseTypeCommercial = "Commercial"
	CaseTypeAppeal     = "Appeal"
)

// Case priority constants
const (
	CasePriorityLow    = "Low"
	CasePriorityNormal = "Normal"
	CasePriorityHigh   = "High"
	CasePriorityUrgent = "Urgent"
)

// Case represents a judicial matter, the aggregate root of the portal.
// CaseNumber is assigned at creation and never changes afterwards.
type Case struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identification
	CaseNumber  string `gorm:"not null;uniqueIndex" json:"case_number"`
	Title       string `gorm:"not null" json:"title"`
	CaseType    string `gorm:"not null" json:"case_type"`
	Description string `gorm:"type:text" json:"description"`

	// Status and lifecycle
	Status    string    `gorm:"not null;default:'Pending Approval';index" json:"status"`
	Priority  string    `gorm:"not null;default:Normal" json:"priority"`
	FiledDate time.Time `gorm:"not null" json:"filed_date"`

	// Hearing schedule (calendar-valid YYYY-MM-DD string, set through the
	// hearing scheduler only)
	NextHearing *string `gorm:"size:10;index" json:"next_hearing,omitempty"`

	// Court assignment
	Court   *string `json:"court,omitempty"`
	JudgeID *string `gorm:"type:uuid;index" json:"judge_id,omitempty"`
	Judge   *User   `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`

	// Representation
	LawyerID *string `gorm:"type:uuid;index" json:"lawyer_id,omitempty"`
	Lawyer   *User   `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	// Provenance
	CreatedByID string `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	// Relationships
	Parties   []CaseParty    `gorm:"foreignKey:CaseID" json:"parties,omitempty"`
	Documents []CaseDocument `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

// BeforeCreate hook to set the filed date
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.FiledDate.IsZero() {
		c.FiledDate = time.Now()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// HasJudge checks if a judge has been assigned
func (c *Case) HasJudge() bool {
	return c.JudgeID != nil && *c.JudgeID != ""
}

// HasLawyer checks if a lawyer has been assigned
func (c *Case) HasLawyer() bool {
	return c.LawyerID != nil && *c.LawyerID != ""
}

// IsConcluded checks if the case has reached a terminal status
func (c *Case) IsConcluded() bool {
	return c.Status == CaseStatusClosed || c.Status == CaseStatusDisposed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	validStatuses := []string{
		CaseStatusPendingApproval,
		CaseStatusFiled,
		CaseStatusAssigned,
		CaseStatusInProgress,
		CaseStatusPendingJudgment,
		CaseStatusAdjourned,
		CaseStatusReview,
		CaseStatusClosed,
		CaseStatusDisposed,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidCaseType checks if the case type is valid
func IsValidCaseType(caseType string) bool {
	switch caseType {
	case CaseTypeCriminal, CaseTypeCivil, CaseTypeFamily, CaseTypeCommercial, CaseTypeAppeal:
		return true
	}
	return false
}

// IsValidCasePriority checks if the priority is valid
func IsValidCasePriority(priority string) bool {
	switch priority {
	case CasePriorityLow, CasePriorityNormal, CasePriorityHigh, CasePriorityUrgent:
		return true
	}
	return false
}
