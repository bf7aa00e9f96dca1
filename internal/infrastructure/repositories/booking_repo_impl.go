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

// BookingRepository implements booking aggregate persistence
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create persists a new booking together with its first history entry
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	db := GetDB(ctx, r.db)

	if err := db.Create(bookingModel(booking)).Error; err != nil {
		return err
	}
	return appendAudits(db, booking.ID, booking.History, func(entry entities.AuditEntry, position int) interface{} {
		return &models.BookingAudit{
			ID:        uuid.New(),
			BookingID: booking.ID,
			Status:    entry.Status,
			Date:      entry.Date,
			Notes:     entry.Notes.Ptr(),
			Reviewer:  entry.Reviewer.Ptr(),
			Position:  position,
		}
	}, &models.BookingAudit{}, "booking_id = ?")
}

// GetByID loads the booking with its status history
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	db := GetDB(ctx, r.db)

	var m models.Booking
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	booking := bookingEntity(&m)
	if err := r.loadHistory(db, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Save persists the booking row and appends any new history entries
func (r *BookingRepository) Save(ctx context.Context, booking *entities.Booking) error {
	db := GetDB(ctx, r.db)

	res := db.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"status":     string(booking.Status),
		"updated_at": booking.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	return appendAudits(db, booking.ID, booking.History, func(entry entities.AuditEntry, position int) interface{} {
		return &models.BookingAudit{
			ID:        uuid.New(),
			BookingID: booking.ID,
			Status:    entry.Status,
			Date:      entry.Date,
			Notes:     entry.Notes.Ptr(),
			Reviewer:  entry.Reviewer.Ptr(),
			Position:  position,
		}
	}, &models.BookingAudit{}, "booking_id = ?")
}

// ListByProvider lists the provider's bookings, newest first
func (r *BookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error) {
	return r.list(ctx, "provider_id = ?", providerID, limit, offset)
}

// ListByCustomer lists the customer's bookings, newest first
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error) {
	return r.list(ctx, "customer_id = ?", customerID, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, query string, arg uuid.UUID, limit, offset int) ([]*entities.Booking, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.Booking{}).Where(query, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Where(query, arg).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []models.Booking
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		booking := bookingEntity(&rows[i])
		if err := r.loadHistory(db, booking); err != nil {
			return nil, 0, err
		}
		out = append(out, booking)
	}
	return out, int(total), nil
}

func (r *BookingRepository) loadHistory(db *gorm.DB, booking *entities.Booking) error {
	var audits []models.BookingAudit
	if err := db.Where("booking_id = ?", booking.ID).Order("position asc").Find(&audits).Error; err != nil {
		return err
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
	booking.History = entities.NewAuditTrail(entries)
	return nil
}

func bookingModel(b *entities.Booking) *models.Booking {
	return &models.Booking{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		ProviderID:   b.ProviderID,
		CustomerID:   b.CustomerID,
		Date:         b.Date,
		Time:         b.Time,
		Location:     b.Location,
		Notes:        b.Notes.Ptr(),
		ContactPhone: b.ContactPhone.Ptr(),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func bookingEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:           m.ID,
		ServiceID:    m.ServiceID,
		ProviderID:   m.ProviderID,
		CustomerID:   m.CustomerID,
		Date:         m.Date,
		Time:         m.Time,
		Location:     m.Location,
		Notes:        null.StringFromPtr(m.Notes),
		ContactPhone: null.StringFromPtr(m.ContactPhone),
		Status:       entities.BookingStatus(m.Status),
		History:      entities.NewAuditTrail(nil),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
