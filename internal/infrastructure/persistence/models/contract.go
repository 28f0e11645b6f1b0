package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractTypeModel is the GORM model for the contract_types table
type ContractTypeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ContractTypeModel) TableName() string {
	return "contract_types"
}

// ContractStatusModel is the GORM model for the contract_statuses table
type ContractStatusModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Code      string    `gorm:"size:50;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ContractStatusModel) TableName() string {
	return "contract_statuses"
}

// ContractModel is the GORM model for the contracts table.
// ClientID is nullable; contracts without a client are never
// visible through the portal.
type ContractModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	ContractNumber string          `gorm:"size:100;not null;uniqueIndex"`
	ClientID       *uuid.UUID      `gorm:"type:uuid;index"`
	TypeID         *int64          `gorm:"index"`
	StatusID       *int64          `gorm:"index"`
	Description    string          `gorm:"type:text"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	FilePath       string          `gorm:"size:500"`
	SignedDate     *time.Time      `gorm:"type:date"`
	StartDate      *time.Time      `gorm:"type:date"`
	EndDate        *time.Time      `gorm:"type:date"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

func (ContractModel) TableName() string {
	return "contracts"
}

// PaymentModel is the GORM model for the payments table
type PaymentModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	ContractID  int64           `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate *time.Time      `gorm:"type:date"`
	Status      string          `gorm:"size:50;not null;default:'pending'"`
	Note        string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// ProductModel is the GORM model for the products table
type ProductModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	Unit      string    `gorm:"size:50"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

// ContractProductModel is the GORM model for the contract_products
// join table. Number is the ordered quantity.
type ContractProductModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	ContractID int64           `gorm:"not null;index"`
	ProductID  int64           `gorm:"not null;index"`
	Number     int             `gorm:"not null;default:1"`
	Total      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

func (ContractProductModel) TableName() string {
	return "contract_products"
}

// ContractAttachmentModel is the GORM model for the contract_attachments table
type ContractAttachmentModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ContractID int64     `gorm:"not null;index"`
	FileName   string    `gorm:"size:255;not null"`
	FilePath   string    `gorm:"size:500;not null"`
	UploadedBy string    `gorm:"size:255"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ContractAttachmentModel) TableName() string {
	return "contract_attachments"
}

// ContractNoteModel is the GORM model for the contract_notes table
type ContractNoteModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ContractID int64     `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null"`
	CreatedBy  string    `gorm:"size:255"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ContractNoteModel) TableName() string {
	return "contract_notes"
}
