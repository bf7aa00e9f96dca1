package entities

import (
	"time"

	"github.com/google/uuid"
)

// Service represents a listing offered by a provider. It is managed by
// routine CRUD elsewhere; the booking workflow only reads its availability
// and ownership.
type Service struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"providerId"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PricingType string    `json:"pricingType"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
