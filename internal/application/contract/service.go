package contract

import (
	"context"
	"strings"

	domain "github.com/contractportal/backend/internal/domain/contract"
	"github.com/contractportal/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 100
)

// StatusSource provides the contract status list, usually through a cache
type StatusSource interface {
	Get(ctx context.Context) ([]domain.Status, error)
}

// Service implements the contract portal use cases
type Service struct {
	repo     domain.Repository
	statuses StatusSource
	logger   *zap.Logger
}

// NewService creates a contract service
func NewService(repo domain.Repository, statuses StatusSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		statuses: statuses,
		logger:   logger,
	}
}

// List returns one page of the client's contracts with pagination metadata.
// Page and limit are normalized rather than rejected; only a missing client
// email is an input error. Repository failures propagate to the caller and
// are never reported as an empty result.
func (s *Service) List(ctx context.Context, input ListInput) ([]SummaryDTO, Pagination, error) {
	email := strings.TrimSpace(input.ClientEmail)
	if email == "" {
		return nil, Pagination{}, shared.NewDomainError("INVALID_INPUT", "client email is required")
	}

	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	query := domain.Query{
		ClientEmail: email,
		Page:        page,
		Limit:       limit,
		Search:      strings.TrimSpace(input.Search),
		StatusCode:  strings.TrimSpace(input.StatusCode),
		SortBy:      input.SortBy,
		SortOrder:   input.SortOrder,
	}

	summaries, total, err := s.repo.FindPage(ctx, query)
	if err != nil {
		s.logger.Error("contract listing failed",
			zap.Error(err),
			zap.Int("page", page),
			zap.Int("limit", limit))
		return nil, Pagination{}, err
	}

	dtos := make([]SummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		dtos = append(dtos, toSummaryDTO(summary))
	}

	return dtos, buildPagination(page, limit, total, len(summaries)), nil
}

// buildPagination computes page metadata. From and To are zero for an
// empty page, including pages past the end of the result set.
func buildPagination(page, limit int, total int64, count int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	from, to := 0, 0
	if count > 0 {
		from = (page-1)*limit + 1
		to = from + count - 1
	}

	return Pagination{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  totalPages,
		From:        from,
		To:          to,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Get returns the full contract detail if the contract belongs to the client
func (s *Service) Get(ctx context.Context, clientEmail string, id int64) (*DetailDTO, error) {
	email := strings.TrimSpace(clientEmail)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client email is required")
	}

	detail, err := s.repo.FindByID(ctx, email, id)
	if err != nil {
		return nil, err
	}
	return toDetailDTO(detail), nil
}

// Statuses returns the contract status filter options
func (s *Service) Statuses(ctx context.Context) ([]StatusDTO, error) {
	statuses, err := s.statuses.Get(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]StatusDTO, 0, len(statuses))
	for _, st := range statuses {
		dtos = append(dtos, StatusDTO{Code: st.Code, Name: st.Name})
	}
	return dtos, nil
}

// Stats returns the client's contract portfolio aggregates
func (s *Service) Stats(ctx context.Context, clientEmail string) (*StatsDTO, error) {
	email := strings.TrimSpace(clientEmail)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client email is required")
	}

	stats, err := s.repo.Stats(ctx, email)
	if err != nil {
		return nil, err
	}

	byStatus := make([]StatusCountDTO, 0, len(stats.ByStatus))
	for _, sc := range stats.ByStatus {
		byStatus = append(byStatus, StatusCountDTO{Code: sc.Code, Name: sc.Name, Count: sc.Count})
	}
	return &StatsDTO{
		TotalContracts: stats.TotalContracts,
		TotalValue:     stats.TotalValue,
		ByStatus:       byStatus,
	}, nil
}
