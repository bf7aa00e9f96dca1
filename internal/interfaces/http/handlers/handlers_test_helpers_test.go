package handlers

import (
	"context"
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/interfaces/http/middleware"
	"homeserve.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
}

// actorMiddleware injects an authenticated identity the way AuthMiddleware
// would, without needing real tokens.
func actorMiddleware(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, actor.ID)
		c.Set(middleware.UserEmailKey, actor.DisplayName)
		c.Set(middleware.UserRoleKey, string(actor.Role))
		c.Next()
	}
}

type providerRepoStub struct {
	createFn       func(ctx context.Context, provider *entities.Provider) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entities.Provider, error)
	getByUserIDFn  func(ctx context.Context, userID uuid.UUID) (*entities.Provider, error)
	saveFn         func(ctx context.Context, provider *entities.Provider) error
	listFn         func(ctx context.Context) ([]*entities.Provider, error)
	listByStatusFn func(ctx context.Context, status entities.VerificationStatus) ([]*entities.Provider, error)
}

func (s *providerRepoStub) Create(ctx context.Context, provider *entities.Provider) error {
	if s.createFn != nil {
		return s.createFn(ctx, provider)
	}
	return nil
}

func (s *providerRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *providerRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *providerRepoStub) Save(ctx context.Context, provider *entities.Provider) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, provider)
	}
	return nil
}

func (s *providerRepoStub) List(ctx context.Context) ([]*entities.Provider, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []*entities.Provider{}, nil
}

func (s *providerRepoStub) ListByStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.Provider, error) {
	if s.listByStatusFn != nil {
		return s.listByStatusFn(ctx, status)
	}
	return []*entities.Provider{}, nil
}

type bookingRepoStub struct {
	createFn         func(ctx context.Context, booking *entities.Booking) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	saveFn           func(ctx context.Context, booking *entities.Booking) error
	listByProviderFn func(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error)
	listByCustomerFn func(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error)
}

func (s *bookingRepoStub) Create(ctx context.Context, booking *entities.Booking) error {
	if s.createFn != nil {
		return s.createFn(ctx, booking)
	}
	return nil
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *bookingRepoStub) Save(ctx context.Context, booking *entities.Booking) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, booking)
	}
	return nil
}

func (s *bookingRepoStub) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error) {
	if s.listByProviderFn != nil {
		return s.listByProviderFn(ctx, providerID, limit, offset)
	}
	return []*entities.Booking{}, 0, nil
}

func (s *bookingRepoStub) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Booking, int, error) {
	if s.listByCustomerFn != nil {
		return s.listByCustomerFn(ctx, customerID, limit, offset)
	}
	return []*entities.Booking{}, 0, nil
}

type serviceRepoStub struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entities.Service, error)
}

func (s *serviceRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

type userRepoStub struct {
	createFn     func(ctx context.Context, user *entities.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn func(ctx context.Context, email string) (*entities.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type storageStub struct {
	storeFn  func(ctx context.Context, filename string, content io.Reader) (string, error)
	deleteFn func(ctx context.Context, storagePath string) error
}

func (s *storageStub) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.storeFn != nil {
		return s.storeFn(ctx, filename, content)
	}
	return "stored.bin", nil
}

func (s *storageStub) Delete(ctx context.Context, storagePath string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, storagePath)
	}
	return nil
}

type cleanupStub struct {
	mu    sync.Mutex
	paths []string
}

func (s *cleanupStub) Enqueue(storagePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, storagePath)
}

type notifierStub struct {
	mu     sync.Mutex
	events []string
}

func (s *notifierStub) Notify(_ context.Context, _ uuid.UUID, event, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}
