package contract

import (
	"time"

	"github.com/contractportal/backend/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// ListInput carries the contract listing parameters as received from the
// transport layer, before normalization.
type ListInput struct {
	ClientEmail string
	Page        int
	Limit       int
	Search      string
	StatusCode  string
	SortBy      string
	SortOrder   string
}

// Pagination describes the position of a page within the full result set
type Pagination struct {
	CurrentPage int
	PerPage     int
	Total       int64
	TotalPages  int
	From        int
	To          int
	HasNextPage bool
	HasPrevPage bool
}

// SummaryDTO is a contract row in a listing response
type SummaryDTO struct {
	ID             int64           `json:"id"`
	ContractNumber string          `json:"contract_number"`
	Description    string          `json:"description"`
	ClientName     string          `json:"client_name"`
	TotalValue     decimal.Decimal `json:"total_value"`
	SignedDate     *time.Time      `json:"signed_date"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
	CreatedAt      time.Time       `json:"created_at"`
	TypeName       string          `json:"type_name"`
	StatusCode     string          `json:"status_code"`
	StatusName     string          `json:"status_name"`
}

// PaymentDTO is a payment installment in a contract detail response
type PaymentDTO struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date"`
	Status      string          `json:"status"`
	Note        string          `json:"note"`
}

// LineItemDTO is a product line in a contract detail response
type LineItemDTO struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	ProductUnit string          `json:"product_unit"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// AttachmentDTO is a file attached to a contract
type AttachmentDTO struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// NoteDTO is a remark recorded against a contract
type NoteDTO struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// DetailDTO is the full contract view including payments, line items,
// attachments and notes
type DetailDTO struct {
	SummaryDTO
	ClientEmail     string          `json:"client_email"`
	FilePath        string          `json:"file_path"`
	Payments        []PaymentDTO    `json:"payments"`
	Items           []LineItemDTO   `json:"items"`
	Attachments     []AttachmentDTO `json:"attachments"`
	Notes           []NoteDTO       `json:"notes"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentProgress decimal.Decimal `json:"payment_progress"`
}

// StatusDTO is a contract status option for filter dropdowns
type StatusDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StatusCountDTO is the number of contracts in a status
type StatusCountDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// StatsDTO aggregates a client's contract portfolio
type StatsDTO struct {
	TotalContracts int64            `json:"total_contracts"`
	TotalValue     decimal.Decimal  `json:"total_value"`
	ByStatus       []StatusCountDTO `json:"by_status"`
}

func toSummaryDTO(s contract.Summary) SummaryDTO {
	return SummaryDTO{
		ID:             s.ID,
		ContractNumber: s.ContractNumber,
		Description:    s.Description,
		ClientName:     s.ClientName,
		TotalValue:     s.TotalValue,
		SignedDate:     s.SignedDate,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		CreatedAt:      s.CreatedAt,
		TypeName:       s.TypeName,
		StatusCode:     s.StatusCode,
		StatusName:     s.StatusName,
	}
}

func toDetailDTO(d *contract.Detail) *DetailDTO {
	payments := make([]PaymentDTO, 0, len(d.Payments))
	for _, p := range d.Payments {
		payments = append(payments, PaymentDTO{
			ID:          p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Status:      p.Status,
			Note:        p.Note,
		})
	}
	items := make([]LineItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, LineItemDTO{
			ID:          it.ID,
			ProductName: it.ProductName,
			ProductUnit: it.ProductUnit,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}
	attachments := make([]AttachmentDTO, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, AttachmentDTO{
			ID:         a.ID,
			FileName:   a.FileName,
			FilePath:   a.FilePath,
			UploadedBy: a.UploadedBy,
			CreatedAt:  a.CreatedAt,
		})
	}
	notes := make([]NoteDTO, 0, len(d.Notes))
	for _, n := range d.Notes {
		notes = append(notes, NoteDTO{
			ID:        n.ID,
			Content:   n.Content,
			CreatedBy: n.CreatedBy,
			CreatedAt: n.CreatedAt,
		})
	}
	return &DetailDTO{
		SummaryDTO:      toSummaryDTO(d.Summary),
		ClientEmail:     d.ClientEmail,
		FilePath:        d.FilePath,
		Payments:        payments,
		Items:           items,
		Attachments:     attachments,
		Notes:           notes,
		PaidAmount:      d.PaidAmount,
		PaymentProgress: d.PaymentProgress(),
	}
}
