package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/domain/repositories"
)

// BookingUsecase drives the booking lifecycle workflow
type BookingUsecase struct {
	bookingRepo  repositories.BookingRepository
	serviceRepo  repositories.ServiceRepository
	providerRepo repositories.ProviderRepository
	uow          repositories.UnitOfWork
	notifier     Notifier
	guard        PermissionGuard
	locks        entityLocks
	now          func() time.Time
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	providerRepo repositories.ProviderRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		uow:          uow,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Create creates a pending booking for an available service of an active
// provider. The active-provider gate applies here only: disabling a provider
// later never invalidates bookings already in flight.
func (u *BookingUsecase) Create(ctx context.Context, actor entities.Actor, input *entities.CreateBookingInput) (*entities.BookingView, error) {
	if !u.guard.CanTransition(actor, entities.Ownership{CustomerID: actor.ID}, entities.TransitionCreateBooking) {
		return nil, domainerrors.ErrForbidden
	}

	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid service id")
	}

	service, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.IsAvailable {
		return nil, domainerrors.ErrServiceUnavailable
	}

	provider, err := u.providerRepo.GetByUserID(ctx, service.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, domainerrors.ErrServiceUnavailable
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid date, expected YYYY-MM-DD")
	}

	booking := entities.NewBooking(actor.ID, service.ID, service.ProviderID, date, input.Time, input.Location, input.Notes, u.now())
	if input.ContactPhone != "" {
		booking.ContactPhone.SetValid(input.ContactPhone)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		return u.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, booking.ProviderID, "booking.requested", "You have a new booking request for "+service.Name)

	return bookingView(booking), nil
}

// Confirm accepts a pending booking
func (u *BookingUsecase) Confirm(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, notes string) (*entities.BookingView, error) {
	return u.act(ctx, actor, bookingID, entities.TransitionConfirmBooking, func(b *entities.Booking) error {
		return b.Confirm(actor.DisplayName, notes, u.now())
	})
}

// Reject declines a pending booking; the reason is mandatory
func (u *BookingUsecase) Reject(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, notes string) (*entities.BookingView, error) {
	return u.act(ctx, actor, bookingID, entities.TransitionRejectBooking, func(b *entities.Booking) error {
		return b.Reject(actor.DisplayName, notes, u.now())
	})
}

// Complete marks a confirmed booking as done
func (u *BookingUsecase) Complete(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, notes string) (*entities.BookingView, error) {
	return u.act(ctx, actor, bookingID, entities.TransitionCompleteBooking, func(b *entities.Booking) error {
		return b.Complete(actor.DisplayName, notes, u.now())
	})
}

// Cancel aborts a pending or confirmed booking; customer or provider may
// cancel
func (u *BookingUsecase) Cancel(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, notes string) (*entities.BookingView, error) {
	return u.act(ctx, actor, bookingID, entities.TransitionCancelBooking, func(b *entities.Booking) error {
		return b.Cancel(actor.DisplayName, notes, u.now())
	})
}

// act runs one guarded booking transition under the per-booking lock
func (u *BookingUsecase) act(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, transition entities.Transition, apply func(*entities.Booking) error) (*entities.BookingView, error) {
	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanTransition(actor, booking.Ownership(), transition) {
		return nil, domainerrors.ErrForbidden
	}

	unlock := u.locks.Lock(bookingID)
	defer unlock()

	var fresh *entities.Booking
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		fresh, err = u.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := apply(fresh); err != nil {
			return err
		}
		return u.bookingRepo.Save(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	u.notifyCounterpart(ctx, actor, fresh)
	return bookingView(fresh), nil
}

// notifyCounterpart tells the other side of the booking what happened
func (u *BookingUsecase) notifyCounterpart(ctx context.Context, actor entities.Actor, booking *entities.Booking) {
	target := booking.CustomerID
	if actor.ID == booking.CustomerID {
		target = booking.ProviderID
	}
	u.notifier.Notify(ctx, target, "booking."+string(booking.Status), "Booking is now "+string(booking.Status))
}

// ListForProvider lists the provider's bookings, newest first
func (u *BookingUsecase) ListForProvider(ctx context.Context, actor entities.Actor, limit, offset int) ([]*entities.Booking, int, error) {
	if actor.Role != entities.UserRoleProvider {
		return nil, 0, domainerrors.ErrForbidden
	}
	return u.bookingRepo.ListByProvider(ctx, actor.ID, limit, offset)
}

// ListForCustomer lists the customer's bookings, newest first
func (u *BookingUsecase) ListForCustomer(ctx context.Context, actor entities.Actor, limit, offset int) ([]*entities.Booking, int, error) {
	if actor.Role != entities.UserRoleCustomer {
		return nil, 0, domainerrors.ErrForbidden
	}
	return u.bookingRepo.ListByCustomer(ctx, actor.ID, limit, offset)
}

func bookingView(b *entities.Booking) *entities.BookingView {
	return &entities.BookingView{
		Booking: b,
		History: b.History.Entries(),
	}
}
