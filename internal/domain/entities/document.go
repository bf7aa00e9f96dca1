package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "homeserve.backend/internal/domain/errors"
)

// DocumentType identifies a verification document bundle. The literal
// strings are part of the wire format.
type DocumentType string

const (
	DocumentTypeBusinessRegistration DocumentType = "businessRegistration"
	DocumentTypeRepresentativeID     DocumentType = "representativeId"
	DocumentTypeProfessionalLicenses DocumentType = "professionalLicenses"
	DocumentTypePortfolio            DocumentType = "portfolio"
)

// DocumentTypes lists all known document types in review order
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeBusinessRegistration,
		DocumentTypeRepresentativeID,
		DocumentTypeProfessionalLicenses,
		DocumentTypePortfolio,
	}
}

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeBusinessRegistration,
		DocumentTypeRepresentativeID,
		DocumentTypeProfessionalLicenses,
		DocumentTypePortfolio:
		return true
	}
	return false
}

// DocumentTypeConfig holds upload limits for one document type. Validation
// against it happens before ingestion, outside the workflow itself.
type DocumentTypeConfig struct {
	MaxFiles    int
	MaxFileSize int64
	// Accepts lists accepted MIME types; an entry ending in "/" matches the
	// whole class (e.g. "image/").
	Accepts []string
}

var documentTypeConfigs = map[DocumentType]DocumentTypeConfig{
	DocumentTypeBusinessRegistration: {MaxFiles: 3, MaxFileSize: 10 << 20, Accepts: []string{"application/pdf", "image/jpeg", "image/png"}},
	DocumentTypeRepresentativeID:     {MaxFiles: 2, MaxFileSize: 5 << 20, Accepts: []string{"image/jpeg", "image/png"}},
	DocumentTypeProfessionalLicenses: {MaxFiles: 3, MaxFileSize: 10 << 20, Accepts: []string{"application/pdf", "image/jpeg", "image/png"}},
	DocumentTypePortfolio:            {MaxFiles: 5, MaxFileSize: 10 << 20, Accepts: []string{"application/pdf", "image/jpeg", "image/png"}},
}

// ConfigFor returns the upload limits for a document type
func ConfigFor(t DocumentType) DocumentTypeConfig {
	return documentTypeConfigs[t]
}

// FileRecord is the metadata of one uploaded file. StoragePath is opaque,
// produced by the file storage collaborator.
type FileRecord struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storagePath"`
	UploadDate  time.Time `json:"uploadDate"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mimeType"`
}

// DocumentBundle is the per-type collection of uploaded files plus the
// administrative review summary. Verified is set only by review, never by
// uploads.
type DocumentBundle struct {
	Files    []FileRecord `json:"files"`
	Verified bool         `json:"verified"`
	Notes    null.String  `json:"notes,omitempty"`
}

// CanAdd reports whether one more file with the given size and MIME type
// would be accepted. Callers use it to reject an upload before the blob is
// written.
func (b *DocumentBundle) CanAdd(size int64, mimeType string, cfg DocumentTypeConfig) error {
	if len(b.Files)+1 > cfg.MaxFiles {
		return domainerrors.ErrQuotaExceeded
	}
	if size > cfg.MaxFileSize {
		return domainerrors.ErrFileTooLarge
	}
	if !accepts(cfg.Accepts, mimeType) {
		return domainerrors.ErrUnsupportedType
	}
	return nil
}

// AddFile validates the file against cfg and appends it with a fresh id.
// Files keep upload order.
func (b *DocumentBundle) AddFile(file FileRecord, cfg DocumentTypeConfig) (FileRecord, error) {
	if err := b.CanAdd(file.Size, file.MimeType, cfg); err != nil {
		return FileRecord{}, err
	}

	file.ID = uuid.New()
	if file.UploadDate.IsZero() {
		file.UploadDate = time.Now()
	}
	b.Files = append(b.Files, file)
	return file, nil
}

// RemoveFile removes the file with the given id and returns its record so
// the caller can release the underlying blob.
func (b *DocumentBundle) RemoveFile(fileID uuid.UUID) (FileRecord, error) {
	for i, f := range b.Files {
		if f.ID == fileID {
			b.Files = append(b.Files[:i], b.Files[i+1:]...)
			return f, nil
		}
	}
	return FileRecord{}, domainerrors.ErrNotFound
}

// MarkReviewed records the administrative review summary for the bundle.
// It never touches the uploaded files.
func (b *DocumentBundle) MarkReviewed(verified bool, notes string) {
	b.Verified = verified
	if notes != "" {
		b.Notes.SetValid(notes)
	} else {
		b.Notes = null.String{}
	}
}

func accepts(accepted []string, mimeType string) bool {
	for _, a := range accepted {
		if strings.HasSuffix(a, "/") {
			if strings.HasPrefix(mimeType, a) {
				return true
			}
		} else if mimeType == a {
			return true
		}
	}
	return false
}
