package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portal roles
const (
	RoleAdmin      = "admin"
	RoleCourtAdmin = "court_admin"
	RoleRegistrar  = "registrar"
	RoleJudge      = "judge"
	RoleClerk      = "clerk"
	RoleLawyer     = "lawyer"
)

// Role sets for the case lifecycle operations. The route guards and the
// service-level checks both read these, so the two layers cannot disagree
// about who may perform an operation.
var (
	CaseFilingRoles       = []string{RoleJudge, RoleRegistrar, RoleAdmin, RoleLawyer}
	CaseApprovalRoles     = []string{RoleJudge, RoleRegistrar, RoleAdmin}
	CourtAssignmentRoles  = []string{RoleJudge, RoleRegistrar, RoleAdmin}
	StatusChangeRoles     = []string{RoleJudge, RoleRegistrar, RoleAdmin}
	LawyerAssignmentRoles = []string{RoleJudge, RoleRegistrar, RoleAdmin}
	CaseDeletionRoles     = []string{RoleJudge, RoleAdmin, RoleCourtAdmin}
)

type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"not null;default:clerk" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds one of the given roles
func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsValidRole checks if the role is one of the portal roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCourtAdmin, RoleRegistrar, RoleJudge, RoleClerk, RoleLawyer:
		return true
	}
	return false
}
