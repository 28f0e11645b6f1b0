package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contractportal/backend/internal/domain/contract"
	"github.com/contractportal/backend/internal/domain/shared"
	"github.com/contractportal/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormContractRepository implements contract.Repository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GORM contract repository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// contractRow is the scan target for the joined contract listing query.
// ClientEmail is only selected by the detail query.
type contractRow struct {
	ID             int64
	ContractNumber string
	Description    string
	ClientName     string
	ClientEmail    string
	TotalValue     decimal.Decimal
	FilePath       string
	SignedDate     *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	TypeName       string
	StatusCode     string
	StatusName     string
}

// baseQuery builds the joined contract query scoped to the owning client.
// The INNER JOIN on clients guarantees contracts with a NULL client_id are
// never attributed to anyone. Count and data queries both go through here
// so they always agree on the predicate.
func (r *GormContractRepository) baseQuery(ctx context.Context, q contract.Query) *gorm.DB {
	tx := r.db.WithContext(ctx).
		Table("contracts").
		Joins("INNER JOIN clients ON clients.id = contracts.client_id").
		Joins("LEFT JOIN contract_types ON contract_types.id = contracts.type_id").
		Joins("LEFT JOIN contract_statuses ON contract_statuses.id = contracts.status_id").
		Where("clients.email = ?", q.ClientEmail)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where(
			"contracts.contract_number ILIKE ? OR contract_types.name ILIKE ? OR contracts.description ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if q.StatusCode != "" {
		tx = tx.Where("contract_statuses.code = ?", q.StatusCode)
	}

	return tx
}

func (r *GormContractRepository) FindPage(ctx context.Context, q contract.Query) ([]contract.Summary, int64, error) {
	var total int64
	if err := r.baseQuery(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contracts: %w", err)
	}

	sortField := ValidateSortField(q.SortBy, ContractSortFields, "created_at")
	sortOrder := ValidateSortOrder(q.SortOrder)

	var rows []contractRow
	err := r.baseQuery(ctx, q).
		Select(`contracts.id, contracts.contract_number, contracts.description,
			clients.name AS client_name,
			contracts.total_value, contracts.signed_date, contracts.start_date,
			contracts.end_date, contracts.created_at,
			contract_types.name AS type_name,
			contract_statuses.code AS status_code,
			contract_statuses.name AS status_name`).
		Order(fmt.Sprintf("contracts.%s %s, contracts.id ASC", sortField, sortOrder)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}

	summaries := make([]contract.Summary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].toSummary())
	}
	return summaries, total, nil
}

func (r *GormContractRepository) FindByID(ctx context.Context, clientEmail string, id int64) (*contract.Detail, error) {
	var row contractRow
	err := r.db.WithContext(ctx).
		Table("contracts").
		Joins("INNER JOIN clients ON clients.id = contracts.client_id").
		Joins("LEFT JOIN contract_types ON contract_types.id = contracts.type_id").
		Joins("LEFT JOIN contract_statuses ON contract_statuses.id = contracts.status_id").
		Where("clients.email = ?", clientEmail).
		Where("contracts.id = ?", id).
		Select(`contracts.id, contracts.contract_number, contracts.description,
			clients.name AS client_name, clients.email AS client_email,
			contracts.total_value, contracts.file_path, contracts.signed_date,
			contracts.start_date, contracts.end_date, contracts.created_at,
			contract_types.name AS type_name,
			contract_statuses.code AS status_code,
			contract_statuses.name AS status_name`).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}

	var paymentModels []models.PaymentModel
	err = r.db.WithContext(ctx).
		Where("contract_id = ?", id).
		Order("payment_date ASC, id ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	var attachmentModels []models.ContractAttachmentModel
	err = r.db.WithContext(ctx).
		Where("contract_id = ?", id).
		Order("created_at DESC").
		Find(&attachmentModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	var noteModels []models.ContractNoteModel
	err = r.db.WithContext(ctx).
		Where("contract_id = ?", id).
		Order("created_at DESC").
		Find(&noteModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	detail := &contract.Detail{
		Summary:     row.toSummary(),
		ClientEmail: row.ClientEmail,
		FilePath:    row.FilePath,
		Payments:    make([]contract.Payment, 0, len(paymentModels)),
		Items:       items,
		Attachments: make([]contract.Attachment, 0, len(attachmentModels)),
		Notes:       make([]contract.Note, 0, len(noteModels)),
		PaidAmount:  decimal.Zero,
	}
	for _, p := range paymentModels {
		detail.Payments = append(detail.Payments, contract.Payment{
			ID:          p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Status:      p.Status,
			Note:        p.Note,
		})
		if p.Status == "paid" {
			detail.PaidAmount = detail.PaidAmount.Add(p.Amount)
		}
	}
	for _, a := range attachmentModels {
		detail.Attachments = append(detail.Attachments, contract.Attachment{
			ID:         a.ID,
			FileName:   a.FileName,
			FilePath:   a.FilePath,
			UploadedBy: a.UploadedBy,
			CreatedAt:  a.CreatedAt,
		})
	}
	for _, n := range noteModels {
		detail.Notes = append(detail.Notes, contract.Note{
			ID:        n.ID,
			Content:   n.Content,
			CreatedBy: n.CreatedBy,
			CreatedAt: n.CreatedAt,
		})
	}
	return detail, nil
}

// loadItems returns the contract's product lines joined with the
// products table for display names and units.
func (r *GormContractRepository) loadItems(ctx context.Context, contractID int64) ([]contract.LineItem, error) {
	type itemRow struct {
		ID          int64
		ProductName string
		ProductUnit string
		Number      int
		Total       decimal.Decimal
	}

	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("contract_products").
		Joins("LEFT JOIN products ON products.id = contract_products.product_id").
		Where("contract_products.contract_id = ?", contractID).
		Select(`contract_products.id, contract_products.number, contract_products.total,
			products.name AS product_name, products.unit AS product_unit`).
		Order("contract_products.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load contract items: %w", err)
	}

	items := make([]contract.LineItem, 0, len(rows))
	for _, it := range rows {
		items = append(items, contract.LineItem{
			ID:          it.ID,
			ProductName: it.ProductName,
			ProductUnit: it.ProductUnit,
			Quantity:    it.Number,
			Total:       it.Total,
		})
	}
	return items, nil
}

func (r *GormContractRepository) DistinctStatuses(ctx context.Context) ([]contract.Status, error) {
	var statuses []contract.Status
	err := r.db.WithContext(ctx).
		Table("contract_statuses").
		Select("DISTINCT contract_statuses.code, contract_statuses.name").
		Order("contract_statuses.name ASC").
		Scan(&statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contract statuses: %w", err)
	}
	return statuses, nil
}

func (r *GormContractRepository) Stats(ctx context.Context, clientEmail string) (*contract.Stats, error) {
	type totalsRow struct {
		TotalContracts int64
		TotalValue     decimal.Decimal
	}

	var totals totalsRow
	err := r.db.WithContext(ctx).
		Table("contracts").
		Joins("INNER JOIN clients ON clients.id = contracts.client_id").
		Where("clients.email = ?", clientEmail).
		Select("COUNT(*) AS total_contracts, COALESCE(SUM(contracts.total_value), 0) AS total_value").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate contracts: %w", err)
	}

	var byStatus []contract.StatusCount
	err = r.db.WithContext(ctx).
		Table("contracts").
		Joins("INNER JOIN clients ON clients.id = contracts.client_id").
		Joins("LEFT JOIN contract_statuses ON contract_statuses.id = contracts.status_id").
		Where("clients.email = ?", clientEmail).
		Select("contract_statuses.code AS code, contract_statuses.name AS name, COUNT(*) AS count").
		Group("contract_statuses.code, contract_statuses.name").
		Order("count DESC").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate contracts by status: %w", err)
	}

	return &contract.Stats{
		TotalContracts: totals.TotalContracts,
		TotalValue:     totals.TotalValue,
		ByStatus:       byStatus,
	}, nil
}

func (row *contractRow) toSummary() contract.Summary {
	return contract.Summary{
		ID:             row.ID,
		ContractNumber: row.ContractNumber,
		Description:    row.Description,
		ClientName:     row.ClientName,
		TotalValue:     row.TotalValue,
		SignedDate:     row.SignedDate,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		CreatedAt:      row.CreatedAt,
		TypeName:       row.TypeName,
		StatusCode:     row.StatusCode,
		StatusName:     row.StatusName,
	}
}

var _ contract.Repository = (*GormContractRepository)(nil)
