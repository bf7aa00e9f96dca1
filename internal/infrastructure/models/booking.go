package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         time.Time
	Time         string  `gorm:"type:varchar(20)"`
	Location     string  `gorm:"type:text"`
	Notes        *string `gorm:"type:text"`
	ContactPhone *string `gorm:"type:varchar(30)"`
	Status       string  `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingAudit is one booking status history entry. Position preserves
// append order; rows are never updated or deleted.
type BookingAudit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Date      time.Time
	Notes     *string `gorm:"type:text"`
	Reviewer  *string `gorm:"type:varchar(100)"`
	Position  int     `gorm:"not null"`
}

func (BookingAudit) TableName() string {
	return "booking_audits"
}
