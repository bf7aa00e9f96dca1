package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Category    string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(10,2)"`
	PricingType string    `gorm:"type:varchar(20)"`
	IsAvailable bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Service) TableName() string {
	return "services"
}
