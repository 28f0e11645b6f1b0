package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known status codes seeded by migrations. The status list is still
// data-driven: queries read codes from the contract_statuses table, so new
// statuses do not require a code change.
const (
	StatusDraft       = "duthao"
	StatusNegotiating = "thuongthao"
	StatusSubmitted   = "trinhky"
	StatusPendingSign = "choduyet"
	StatusApproved    = "daduyet"
	StatusSigned      = "daky"
	StatusExpired     = "hethan"
)

// Summary is a single row of a contract listing page.
type Summary struct {
	ID             int64
	ContractNumber string
	Description    string
	ClientName     string
	TotalValue     decimal.Decimal
	SignedDate     *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	TypeName       string
	StatusCode     string
	StatusName     string
}

// Payment is a payment installment recorded against a contract.
type Payment struct {
	ID          int64
	Amount      decimal.Decimal
	PaymentDate *time.Time
	Status      string
	Note        string
}

// LineItem is a product line on a contract, denormalized with the
// product's name and unit.
type LineItem struct {
	ID          int64
	ProductName string
	ProductUnit string
	Quantity    int
	Total       decimal.Decimal
}

// Attachment is a file attached to a contract.
type Attachment struct {
	ID         int64
	FileName   string
	FilePath   string
	UploadedBy string
	CreatedAt  time.Time
}

// Note is a free-form remark recorded against a contract.
type Note struct {
	ID        int64
	Content   string
	CreatedBy string
	CreatedAt time.Time
}

// Detail is the full view of a single contract: payments, line items,
// attachments and notes.
type Detail struct {
	Summary
	ClientEmail string
	FilePath    string
	Payments    []Payment
	Items       []LineItem
	Attachments []Attachment
	Notes       []Note
	PaidAmount  decimal.Decimal
}

// PaymentProgress returns paid amount as a percentage of total value,
// clamped to [0, 100]. Returns 0 when the contract has no value.
func (d *Detail) PaymentProgress() decimal.Decimal {
	if d.TotalValue.IsZero() {
		return decimal.Zero
	}
	progress := d.PaidAmount.Div(d.TotalValue).Mul(decimal.NewFromInt(100))
	if progress.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	if progress.IsNegative() {
		return decimal.Zero
	}
	return progress
}

// Status is a contract status as shown in filter dropdowns.
type Status struct {
	Code string
	Name string
}

// StatusCount is the number of contracts in a given status.
type StatusCount struct {
	Code  string
	Name  string
	Count int64
}

// Stats aggregates a client's contract portfolio.
type Stats struct {
	TotalContracts int64
	TotalValue     decimal.Decimal
	ByStatus       []StatusCount
}

// Query describes a contract page lookup. ClientEmail scopes every
// condition; Page and Limit are assumed to be normalized by the caller.
type Query struct {
	ClientEmail string
	Page        int
	Limit       int
	Search      string
	StatusCode  string
	SortBy      string
	SortOrder   string
}

// Offset returns the row offset for the query page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}
