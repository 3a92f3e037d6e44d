package models

import (
	"time"

	"gorm.io/gorm"
)

// CaseDocument is an uploaded file attached to a case. The binary content
// lives in the storage provider under FileKey.
type CaseDocument struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID           uint   `gorm:"not null;index" json:"case_id"`
	Title            string `gorm:"not null" json:"title"`
	FileKey          string `gorm:"not null" json:"-"`
	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `json:"file_original_name,omitempty"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`

	UploadedByID string `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	UploadedBy   *User  `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

func (CaseDocument) TableName() string {
	return "case_documents"
}
