package repositories

import (
	"context"

	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
)

// BookingRepository defines booking aggregate data operations. Save persists
// the booking together with its status history.
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	Save(ctx context.Context, booking *entities.Booking) error
	ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error)
}
