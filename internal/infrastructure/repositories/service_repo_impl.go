package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/infrastructure/models"
)

// ServiceRepository implements service listing reads
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// GetByID gets a service by id
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	db := GetDB(ctx, r.db)

	var m models.Service
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	return &entities.Service{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		Price:       m.Price,
		PricingType: m.PricingType,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
