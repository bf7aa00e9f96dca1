package usecases

import (
	"context"
	"time"

	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/domain/repositories"
	"homeserve.backend/pkg/crypto"
	"homeserve.backend/pkg/jwt"

	"github.com/google/uuid"
)

// AuthUsecase handles registration and login. Token issuance itself lives in
// pkg/jwt.
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	providerRepo repositories.ProviderRepository
	uow          repositories.UnitOfWork
	jwtService   *jwt.JWTService
	now          func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	providerRepo repositories.ProviderRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		uow:          uow,
		jwtService:   jwtService,
		now:          time.Now,
	}
}

// Register creates an account. Registering as a provider also creates the
// verification aggregate, starting unsubmitted.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	role := entities.UserRole(input.UserType)
	if role != entities.UserRoleCustomer && role != entities.UserRoleProvider {
		return nil, domainerrors.BadRequest("userType must be customer or provider")
	}

	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrAlreadyExists
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := u.now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		if role == entities.UserRoleProvider {
			return u.providerRepo.Create(ctx, entities.NewProvider(user.ID, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.tokens(user)
}

// Login authenticates an account and issues a token pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.tokens(user)
}

func (u *AuthUsecase) tokens(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
