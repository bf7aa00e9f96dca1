package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/domain/repositories"
	"homeserve.backend/pkg/logger"
)

// VerificationUsecase drives the provider verification workflow
type VerificationUsecase struct {
	providerRepo repositories.ProviderRepository
	uow          repositories.UnitOfWork
	storage      FileStorage
	cleanup      CleanupQueue
	notifier     Notifier
	guard        PermissionGuard
	locks        entityLocks
	now          func() time.Time
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	providerRepo repositories.ProviderRepository,
	uow repositories.UnitOfWork,
	storage FileStorage,
	cleanup CleanupQueue,
	notifier Notifier,
) *VerificationUsecase {
	return &VerificationUsecase{
		providerRepo: providerRepo,
		uow:          uow,
		storage:      storage,
		cleanup:      cleanup,
		notifier:     notifier,
		now:          time.Now,
	}
}

// AddDocument stores an uploaded file and records it in the provider's
// bundle for docType.
func (u *VerificationUsecase) AddDocument(ctx context.Context, actor entities.Actor, docType entities.DocumentType, upload FileUpload) (*entities.FileRecord, error) {
	provider, err := u.providerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanTransition(actor, provider.Ownership(), entities.TransitionAddDocument) {
		return nil, domainerrors.ErrForbidden
	}

	// Reject before the blob is written; the workflow state could still
	// change before commit, so the checks run again under the lock.
	if err := provider.CanAddDocument(docType, upload.Size, upload.MimeType); err != nil {
		return nil, err
	}

	storagePath, err := u.storage.Store(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	unlock := u.locks.Lock(provider.ID)
	defer unlock()

	var added entities.FileRecord
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err := u.providerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		added, err = fresh.AddDocument(docType, entities.FileRecord{
			Filename:    upload.Filename,
			StoragePath: storagePath,
			UploadDate:  u.now(),
			Size:        upload.Size,
			MimeType:    upload.MimeType,
		}, u.now())
		if err != nil {
			return err
		}
		return u.providerRepo.Save(ctx, fresh)
	})
	if err != nil {
		u.releaseBlob(ctx, storagePath)
		return nil, err
	}

	return &added, nil
}

// DeleteDocument removes a file from a bundle. The blob release is best
// effort: metadata removal is the source of truth, storage failures are
// logged and queued for retry, never surfaced.
func (u *VerificationUsecase) DeleteDocument(ctx context.Context, actor entities.Actor, docType entities.DocumentType, fileID uuid.UUID) error {
	provider, err := u.providerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !u.guard.CanTransition(actor, provider.Ownership(), entities.TransitionDeleteDocument) {
		return domainerrors.ErrForbidden
	}

	unlock := u.locks.Lock(provider.ID)
	defer unlock()

	var removed entities.FileRecord
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err := u.providerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		removed, err = fresh.DeleteDocument(docType, fileID, u.now())
		if err != nil {
			return err
		}
		return u.providerRepo.Save(ctx, fresh)
	})
	if err != nil {
		return err
	}

	u.releaseBlob(ctx, removed.StoragePath)
	return nil
}

// SubmitForReview moves the provider's verification to pending
func (u *VerificationUsecase) SubmitForReview(ctx context.Context, actor entities.Actor) (*entities.VerificationStatusResponse, error) {
	provider, err := u.providerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanTransition(actor, provider.Ownership(), entities.TransitionSubmitForReview) {
		return nil, domainerrors.ErrForbidden
	}

	unlock := u.locks.Lock(provider.ID)
	defer unlock()

	var fresh *entities.Provider
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err = u.providerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if err := fresh.SubmitForReview(u.now()); err != nil {
			return err
		}
		return u.providerRepo.Save(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	return statusResponse(fresh), nil
}

// Resubmit is the post-rejection synonym for SubmitForReview. The guard and
// the effect are identical; only the API wording differs.
func (u *VerificationUsecase) Resubmit(ctx context.Context, actor entities.Actor) (*entities.VerificationStatusResponse, error) {
	return u.SubmitForReview(ctx, actor)
}

// Review applies an administrative approve/reject decision
func (u *VerificationUsecase) Review(ctx context.Context, actor entities.Actor, input *entities.ReviewProviderInput) (*entities.VerificationStatusResponse, error) {
	providerID, err := uuid.Parse(input.ProviderID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid provider id")
	}

	provider, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanTransition(actor, provider.Ownership(), entities.TransitionReview) {
		return nil, domainerrors.ErrForbidden
	}

	perDocument := make(map[entities.DocumentType]bool, len(input.DocumentReview))
	for docType, review := range input.DocumentReview {
		perDocument[docType] = review.Verified
	}

	unlock := u.locks.Lock(provider.ID)
	defer unlock()

	var fresh *entities.Provider
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err = u.providerRepo.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		if err := fresh.Review(actor.ID.String(), input.Approved, input.Notes, perDocument, u.now()); err != nil {
			return err
		}
		return u.providerRepo.Save(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	if input.Approved {
		u.notifier.Notify(ctx, fresh.UserID, "verification.approved", "Your provider account has been verified")
	} else {
		u.notifier.Notify(ctx, fresh.UserID, "verification.rejected", "Your verification was rejected: "+input.Notes)
	}

	return statusResponse(fresh), nil
}

// SetProviderActive enables or disables a provider account. The gate applies
// to new bookings only; it never rewrites verification state.
func (u *VerificationUsecase) SetProviderActive(ctx context.Context, actor entities.Actor, providerID uuid.UUID, input *entities.ProviderStatusInput) (*entities.Provider, error) {
	provider, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanTransition(actor, provider.Ownership(), entities.TransitionSetActive) {
		return nil, domainerrors.ErrForbidden
	}

	unlock := u.locks.Lock(provider.ID)
	defer unlock()

	var fresh *entities.Provider
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err = u.providerRepo.GetByID(ctx, providerID)
		if err != nil {
			return err
		}
		fresh.SetActive(input.IsActive, input.Notes, u.now())
		return u.providerRepo.Save(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	event, message := "provider.enabled", "Your provider account has been enabled"
	if !input.IsActive {
		event, message = "provider.disabled", "Your provider account has been disabled"
	}
	u.notifier.Notify(ctx, fresh.UserID, event, message)

	return fresh, nil
}

// GetStatus returns the provider's own verification view
func (u *VerificationUsecase) GetStatus(ctx context.Context, actor entities.Actor) (*entities.VerificationStatusResponse, error) {
	provider, err := u.providerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return statusResponse(provider), nil
}

// GetProviderStatus returns the verification view of any provider, for
// administrative review screens.
func (u *VerificationUsecase) GetProviderStatus(ctx context.Context, providerID uuid.UUID) (*entities.VerificationStatusResponse, error) {
	provider, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return statusResponse(provider), nil
}

// ListProviders returns verification views of all providers, optionally
// filtered by status (admin listing).
func (u *VerificationUsecase) ListProviders(ctx context.Context, status string) ([]*entities.VerificationStatusResponse, error) {
	var (
		providers []*entities.Provider
		err       error
	)
	if status == "" {
		providers, err = u.providerRepo.List(ctx)
	} else {
		switch s := entities.VerificationStatus(status); s {
		case entities.VerificationStatusUnsubmitted, entities.VerificationStatusPending,
			entities.VerificationStatusVerified, entities.VerificationStatusRejected:
			providers, err = u.providerRepo.ListByStatus(ctx, s)
		default:
			return nil, domainerrors.BadRequest("invalid verification status")
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]*entities.VerificationStatusResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, statusResponse(p))
	}
	return out, nil
}

func (u *VerificationUsecase) releaseBlob(ctx context.Context, storagePath string) {
	if err := u.storage.Delete(ctx, storagePath); err != nil {
		logger.Warn(ctx, "blob delete failed, queued for retry",
			zap.String("storage_path", storagePath),
			zap.Error(err),
		)
		u.cleanup.Enqueue(storagePath)
	}
}

func statusResponse(p *entities.Provider) *entities.VerificationStatusResponse {
	return &entities.VerificationStatusResponse{
		ProviderID: p.ID,
		Status:     p.Status,
		IsVerified: p.IsVerified(),
		IsActive:   p.IsActive,
		Documents:  p.Documents,
		History:    p.History.Entries(),
	}
}
