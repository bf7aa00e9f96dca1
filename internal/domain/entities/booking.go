package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "homeserve.backend/internal/domain/errors"
)

// BookingStatus represents booking status. The literal strings are part of
// the wire format.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

// bookingTransitions is the legal state graph. Completed, cancelled and
// rejected are terminal; bookings in those states are retained for audit.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
	BookingStatusRejected:  {},
}

// Booking is the aggregate root for the booking lifecycle. It holds
// non-owning references to the service and customer; its status history is
// exclusively owned.
type Booking struct {
	ID           uuid.UUID     `json:"id"`
	ServiceID    uuid.UUID     `json:"serviceId"`
	ProviderID   uuid.UUID     `json:"providerId"`
	CustomerID   uuid.UUID     `json:"customerId"`
	Date         time.Time     `json:"date"`
	Time         string        `json:"time"`
	Location     string        `json:"location"`
	Notes        null.String   `json:"notes,omitempty"`
	ContactPhone null.String   `json:"contactPhone,omitempty"`
	Status       BookingStatus `json:"status"`
	History      *AuditTrail   `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NewBooking creates a pending booking with its system-generated first audit
// entry.
func NewBooking(customerID, serviceID, providerID uuid.UUID, date time.Time, timeSlot, location, notes string, now time.Time) *Booking {
	b := &Booking{
		ID:         uuid.New(),
		ServiceID:  serviceID,
		ProviderID: providerID,
		CustomerID: customerID,
		Date:       date,
		Time:       timeSlot,
		Location:   location,
		Status:     BookingStatusPending,
		History:    NewAuditTrail(nil),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if notes != "" {
		b.Notes.SetValid(notes)
	}
	// First entry has no reviewer: the booking request itself is recorded as
	// a system event.
	_ = b.History.Append(AuditEntry{
		Status: string(BookingStatusPending),
		Date:   now,
		Notes:  null.StringFrom("Booking request created"),
	})
	return b
}

// Ownership returns the owning parties for permission checks
func (b *Booking) Ownership() Ownership {
	return Ownership{ProviderID: b.ProviderID, CustomerID: b.CustomerID}
}

// CanTransition reports whether the status graph allows moving to next
func (b *Booking) CanTransition(next BookingStatus) bool {
	for _, s := range bookingTransitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}

func (b *Booking) transition(next BookingStatus, actor, notes string, now time.Time) error {
	if !b.CanTransition(next) {
		return domainerrors.ErrInvalidState
	}
	entry := AuditEntry{
		Status:   string(next),
		Date:     now,
		Reviewer: null.StringFrom(actor),
	}
	if notes != "" {
		entry.Notes.SetValid(notes)
	}
	if err := b.History.Append(entry); err != nil {
		return err
	}
	b.Status = next
	b.UpdatedAt = now
	return nil
}

// Confirm accepts a pending booking
func (b *Booking) Confirm(actor, notes string, now time.Time) error {
	if notes == "" {
		notes = "Booking has been confirmed"
	}
	return b.transition(BookingStatusConfirmed, actor, notes, now)
}

// Reject declines a pending booking; a reason is mandatory
func (b *Booking) Reject(actor, notes string, now time.Time) error {
	if strings.TrimSpace(notes) == "" {
		return domainerrors.ErrValidation
	}
	return b.transition(BookingStatusRejected, actor, notes, now)
}

// Complete marks a confirmed booking as done
func (b *Booking) Complete(actor, notes string, now time.Time) error {
	if notes == "" {
		notes = "Service has been completed"
	}
	return b.transition(BookingStatusCompleted, actor, notes, now)
}

// Cancel aborts a pending or confirmed booking; either side may cancel
func (b *Booking) Cancel(actor, notes string, now time.Time) error {
	if notes == "" {
		notes = "Booking has been cancelled"
	}
	return b.transition(BookingStatusCancelled, actor, notes, now)
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	ServiceID    string `json:"serviceId" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Notes        string `json:"notes"`
	ContactPhone string `json:"contactPhone"`
}

// BookingActionInput carries the optional or mandatory notes of a booking
// transition
type BookingActionInput struct {
	Notes string `json:"notes"`
}

// BookingView is the entity view returned by booking operations
type BookingView struct {
	Booking *Booking     `json:"booking"`
	History []AuditEntry `json:"statusHistory"`
}
