package models

import (
	"time"

	"gorm.io/gorm"
)

// Party role constants (role of the party in the case)
const (
	PartyRolePlaintiff  = "Plaintiff"
	PartyRoleDefendant  = "Defendant"
	PartyRoleWitness    = "Witness"
	PartyRoleAppellant  = "Appellant"
	PartyRoleRespondent = "Respondent"
)

// CaseParty is a person or entity named on a case
type CaseParty struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID  uint   `gorm:"not null;index" json:"case_id"`
	Name    string `gorm:"not null" json:"name"`
	Role    string `gorm:"not null" json:"role"`
	Contact string `json:"contact,omitempty"`
	Address string `json:"address,omitempty"`
}

func (CaseParty) TableName() string {
	return "case_parties"
}

// IsValidPartyRole checks if the party role is valid
func IsValidPartyRole(role string) bool {
	switch role {
	case PartyRolePlaintiff, PartyRoleDefendant, PartyRoleWitness, PartyRoleAppellant, PartyRoleRespondent:
		return true
	}
	return false
}
