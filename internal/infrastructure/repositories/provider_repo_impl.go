package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/infrastructure/models"
)

// ProviderRepository implements provider verification aggregate persistence
type ProviderRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create persists a fresh aggregate
func (r *ProviderRepository) Create(ctx context.Context, provider *entities.Provider) error {
	db := GetDB(ctx, r.db)
	return db.Create(providerModel(provider)).Error
}

// GetByID loads the full aggregate: provider row, bundles, files, history
func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	return r.get(ctx, "id = ?", id)
}

// GetByUserID loads the aggregate owned by the given user account
func (r *ProviderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error) {
	return r.get(ctx, "user_id = ?", userID)
}

func (r *ProviderRepository) get(ctx context.Context, query string, arg interface{}) (*entities.Provider, error) {
	db := GetDB(ctx, r.db)

	var m models.Provider
	if err := db.Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	provider := providerEntity(&m)

	var bundles []models.ProviderDocument
	if err := db.Where("provider_id = ?", m.ID).Find(&bundles).Error; err != nil {
		return nil, err
	}
	for i := range bundles {
		bundle := &entities.DocumentBundle{Verified: bundles[i].Verified}
		if bundles[i].Notes != nil {
			bundle.Notes = null.StringFromPtr(bundles[i].Notes)
		}

		var files []models.DocumentFile
		if err := db.Where("document_id = ?", bundles[i].ID).Order("position asc").Find(&files).Error; err != nil {
			return nil, err
		}
		for _, f := range files {
			bundle.Files = append(bundle.Files, entities.FileRecord{
				ID:          f.ID,
				Filename:    f.Filename,
				StoragePath: f.StoragePath,
				UploadDate:  f.UploadDate,
				Size:        f.Size,
				MimeType:    f.MimeType,
			})
		}
		provider.Documents[entities.DocumentType(bundles[i].DocType)] = bundle
	}

	var audits []models.VerificationAudit
	if err := db.Where("provider_id = ?", m.ID).Order("position asc").Find(&audits).Error; err != nil {
		return nil, err
	}
	entries := make([]entities.AuditEntry, 0, len(audits))
	for _, a := range audits {
		entries = append(entries, entities.AuditEntry{
			Status:   a.Status,
			Date:     a.Date,
			Notes:    null.StringFromPtr(a.Notes),
			Reviewer: null.StringFromPtr(a.Reviewer),
		})
	}
	provider.History = entities.NewAuditTrail(entries)

	return provider, nil
}

// Save persists the aggregate. Bundles are upserted, file sets replaced, and
// history entries appended; audit rows already on disk are never rewritten.
func (r *ProviderRepository) Save(ctx context.Context, provider *entities.Provider) error {
	db := GetDB(ctx, r.db)

	res := db.Model(&models.Provider{}).Where("id = ?", provider.ID).Updates(map[string]interface{}{
		"status":       string(provider.Status),
		"is_active":    provider.IsActive,
		"status_notes": provider.StatusNotes.Ptr(),
		"updated_at":   provider.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	for docType, bundle := range provider.Documents {
		var row models.ProviderDocument
		err := db.Where("provider_id = ? AND doc_type = ?", provider.ID, string(docType)).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.ProviderDocument{
				ID:         uuid.New(),
				ProviderID: provider.ID,
				DocType:    string(docType),
				Verified:   bundle.Verified,
				Notes:      bundle.Notes.Ptr(),
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := db.Model(&models.ProviderDocument{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
				"verified": bundle.Verified,
				"notes":    bundle.Notes.Ptr(),
			}).Error; err != nil {
				return err
			}
		}

		if err := db.Where("document_id = ?", row.ID).Delete(&models.DocumentFile{}).Error; err != nil {
			return err
		}
		for i, f := range bundle.Files {
			file := models.DocumentFile{
				ID:          f.ID,
				DocumentID:  row.ID,
				Filename:    f.Filename,
				StoragePath: f.StoragePath,
				UploadDate:  f.UploadDate,
				Size:        f.Size,
				MimeType:    f.MimeType,
				Position:    i,
			}
			if err := db.Create(&file).Error; err != nil {
				return err
			}
		}
	}

	return appendAudits(db, provider.ID, provider.History, func(entry entities.AuditEntry, position int) interface{} {
		return &models.VerificationAudit{
			ID:         uuid.New(),
			ProviderID: provider.ID,
			Status:     entry.Status,
			Date:       entry.Date,
			Notes:      entry.Notes.Ptr(),
			Reviewer:   entry.Reviewer.Ptr(),
			Position:   position,
		}
	}, &models.VerificationAudit{}, "provider_id = ?")
}

// List returns all provider aggregates (admin listing; histories and files
// included)
func (r *ProviderRepository) List(ctx context.Context) ([]*entities.Provider, error) {
	return r.list(ctx, "")
}

// ListByStatus returns provider aggregates in the given verification status
func (r *ProviderRepository) ListByStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.Provider, error) {
	return r.list(ctx, string(status))
}

func (r *ProviderRepository) list(ctx context.Context, status string) ([]*entities.Provider, error) {
	db := GetDB(ctx, r.db)

	var rows []models.Provider
	q := db.Order("created_at asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.Provider, 0, len(rows))
	for i := range rows {
		provider, err := r.get(ctx, "id = ?", rows[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, provider)
	}
	return out, nil
}

// appendAudits inserts only the history entries that are not yet on disk
func appendAudits(db *gorm.DB, ownerID uuid.UUID, trail *entities.AuditTrail, build func(entities.AuditEntry, int) interface{}, model interface{}, ownerQuery string) error {
	var persisted int64
	if err := db.Model(model).Where(ownerQuery, ownerID).Count(&persisted).Error; err != nil {
		return err
	}

	entries := trail.Entries()
	for i := int(persisted); i < len(entries); i++ {
		if err := db.Create(build(entries[i], i)).Error; err != nil {
			return err
		}
	}
	return nil
}

func providerModel(p *entities.Provider) *models.Provider {
	return &models.Provider{
		ID:          p.ID,
		UserID:      p.UserID,
		Status:      string(p.Status),
		IsActive:    p.IsActive,
		StatusNotes: p.StatusNotes.Ptr(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func providerEntity(m *models.Provider) *entities.Provider {
	return &entities.Provider{
		ID:          m.ID,
		UserID:      m.UserID,
		Status:      entities.VerificationStatus(m.Status),
		IsActive:    m.IsActive,
		StatusNotes: null.StringFromPtr(m.StatusNotes),
		Documents:   make(map[entities.DocumentType]*entities.DocumentBundle),
		History:     entities.NewAuditTrail(nil),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
