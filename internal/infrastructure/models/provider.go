package models

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'unsubmitted'"`
	IsActive    bool      `gorm:"not null;default:true"`
	StatusNotes *string   `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Provider) TableName() string {
	return "providers"
}

// ProviderDocument is one document bundle (per provider and document type)
type ProviderDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_provider_doc_type"`
	DocType    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_doc_type"`
	Verified   bool      `gorm:"not null;default:false"`
	Notes      *string   `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProviderDocument) TableName() string {
	return "provider_documents"
}

// DocumentFile is one uploaded file inside a bundle. Position preserves
// upload order.
type DocumentFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	StoragePath string    `gorm:"type:varchar(512);not null"`
	UploadDate  time.Time
	Size        int64
	MimeType    string `gorm:"type:varchar(100)"`
	Position    int    `gorm:"not null"`
}

func (DocumentFile) TableName() string {
	return "document_files"
}

// VerificationAudit is one verification history entry. Position preserves
// append order; rows are never updated or deleted.
type VerificationAudit struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Date       time.Time
	Notes      *string `gorm:"type:text"`
	Reviewer   *string `gorm:"type:varchar(100)"`
	Position   int     `gorm:"not null"`
}

func (VerificationAudit) TableName() string {
	return "verification_audits"
}
