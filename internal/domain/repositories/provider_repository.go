package repositories

import (
	"context"

	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
)

// ProviderRepository defines provider verification aggregate data operations.
// Save persists the aggregate together with its documents and history.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entities.Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error)
	Save(ctx context.Context, provider *entities.Provider) error
	List(ctx context.Context) ([]*entities.Provider, error)
	ListByStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.Provider, error)
}

// ServiceRepository defines service listing reads used by the booking
// workflow
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
}

// UserRepository defines user account data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
