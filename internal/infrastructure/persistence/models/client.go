package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientModel is the GORM model for the clients table
type ClientModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Phone        string     `gorm:"size:50"`
	Address      string     `gorm:"type:text"`
	CompanyName  string     `gorm:"size:200"`
	TaxCode      string     `gorm:"size:50"`
	LastLoginAt  *time.Time `gorm:""`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the client model
func (ClientModel) TableName() string {
	return "clients"
}
