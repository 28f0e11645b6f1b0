package contract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domain "github.com/contractportal/backend/internal/domain/contract"
	"github.com/contractportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindPage(ctx context.Context, q domain.Query) ([]domain.Summary, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Summary), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) FindByID(ctx context.Context, clientEmail string, id int64) (*domain.Detail, error) {
	args := m.Called(ctx, clientEmail, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Detail), args.Error(1)
}

func (m *mockRepository) DistinctStatuses(ctx context.Context) ([]domain.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *mockRepository) Stats(ctx context.Context, clientEmail string) (*domain.Stats, error) {
	args := m.Called(ctx, clientEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

type mockStatusSource struct {
	mock.Mock
}

func (m *mockStatusSource) Get(ctx context.Context) ([]domain.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func makeSummaries(n int) []domain.Summary {
	out := make([]domain.Summary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Summary{
			ID:             int64(i + 1),
			ContractNumber: "HD-2026-001",
			TotalValue:     decimal.NewFromInt(1000),
			CreatedAt:      time.Now(),
		})
	}
	return out
}

func TestService_List_EmptyEmailRejected(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, new(mockStatusSource), nil)

	for _, email := range []string{"", "   "} {
		_, _, err := svc.List(context.Background(), ListInput{ClientEmail: email})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	}

	// The repository must never be reached with a blank email
	repo.AssertNotCalled(t, "FindPage")
}

func TestService_List_NormalizesPageAndLimit(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"zero values", 0, 0, 1, 12},
		{"negative values", -3, -1, 1, 12},
		{"limit capped", 1, 500, 1, 100},
		{"valid passthrough", 2, 25, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("FindPage", mock.Anything, mock.MatchedBy(func(q domain.Query) bool {
				return q.Page == tt.wantPage && q.Limit == tt.wantLimit
			})).Return(makeSummaries(0), int64(0), nil)

			svc := NewService(repo, new(mockStatusSource), nil)
			_, meta, err := svc.List(context.Background(), ListInput{
				ClientEmail: "client@example.com",
				Page:        tt.page,
				Limit:       tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, meta.CurrentPage)
			assert.Equal(t, tt.wantLimit, meta.PerPage)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_List_PaginationMeta(t *testing.T) {
	// 25 contracts at 12 per page: page 3 holds the single last row
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.Anything).
		Return(makeSummaries(1), int64(25), nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	rows, meta, err := svc.List(context.Background(), ListInput{
		ClientEmail: "client@example.com",
		Page:        3,
		Limit:       12,
	})
	require.NoError(t, err)

	assert.Len(t, rows, 1)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 12, meta.PerPage)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 25, meta.From)
	assert.Equal(t, 25, meta.To)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

func TestService_List_MiddlePage(t *testing.T) {
	// 14 contracts at 12 per page: page 2 holds rows 13 and 14
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.Anything).
		Return(makeSummaries(2), int64(14), nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	rows, meta, err := svc.List(context.Background(), ListInput{
		ClientEmail: "client@example.com",
		Page:        2,
		Limit:       12,
	})
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 13, meta.From)
	assert.Equal(t, 14, meta.To)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

func TestService_List_NoMatches(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.Anything).
		Return(makeSummaries(0), int64(0), nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	rows, meta, err := svc.List(context.Background(), ListInput{
		ClientEmail: "nobody@example.com",
	})
	require.NoError(t, err)

	assert.Empty(t, rows)
	assert.Equal(t, int64(0), meta.Total)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, 0, meta.From)
	assert.Equal(t, 0, meta.To)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestService_List_PagePastEnd(t *testing.T) {
	// Page 5 of a 25-row set is empty but the metadata stays correct
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.Anything).
		Return(makeSummaries(0), int64(25), nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	rows, meta, err := svc.List(context.Background(), ListInput{
		ClientEmail: "client@example.com",
		Page:        5,
		Limit:       12,
	})
	require.NoError(t, err)

	assert.Empty(t, rows)
	assert.Equal(t, 5, meta.CurrentPage)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, meta.From)
	assert.Equal(t, 0, meta.To)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

func TestService_List_RepositoryErrorPropagates(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.Anything).
		Return(nil, int64(0), errors.New("connection refused"))

	svc := NewService(repo, new(mockStatusSource), nil)
	_, _, err := svc.List(context.Background(), ListInput{
		ClientEmail: "client@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_List_SortParamsPassedThrough(t *testing.T) {
	// Hostile sort input reaches the repository untouched; the repository
	// validates it against the allow-list before building SQL.
	repo := new(mockRepository)
	repo.On("FindPage", mock.Anything, mock.MatchedBy(func(q domain.Query) bool {
		return q.SortBy == "total_value; DROP TABLE contracts" && q.SortOrder == "up"
	})).Return(makeSummaries(0), int64(0), nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	_, _, err := svc.List(context.Background(), ListInput{
		ClientEmail: "client@example.com",
		SortBy:      "total_value; DROP TABLE contracts",
		SortOrder:   "up",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Get(t *testing.T) {
	detail := &domain.Detail{
		Summary: domain.Summary{
			ID:             7,
			ContractNumber: "HD-2026-007",
			ClientName:     "Acme Ltd",
			TotalValue:     decimal.NewFromInt(100000),
		},
		ClientEmail: "client@example.com",
		Items: []domain.LineItem{
			{ID: 1, ProductName: "Workstation", ProductUnit: "pcs", Quantity: 4, Total: decimal.NewFromInt(80000)},
		},
		Attachments: []domain.Attachment{
			{ID: 3, FileName: "signed.pdf", FilePath: "attachments/signed.pdf"},
		},
		Notes: []domain.Note{
			{ID: 5, Content: "Deposit received", CreatedBy: "Back Office"},
		},
		PaidAmount: decimal.NewFromInt(40000),
	}

	repo := new(mockRepository)
	repo.On("FindByID", mock.Anything, "client@example.com", int64(7)).Return(detail, nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	got, err := svc.Get(context.Background(), "client@example.com", 7)
	require.NoError(t, err)

	assert.Equal(t, "HD-2026-007", got.ContractNumber)
	assert.Equal(t, "Acme Ltd", got.ClientName)
	assert.Equal(t, "client@example.com", got.ClientEmail)
	assert.Equal(t, "40", got.PaymentProgress.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Workstation", got.Items[0].ProductName)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "signed.pdf", got.Attachments[0].FileName)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "Deposit received", got.Notes[0].Content)
}

func TestSummaryDTO_MarshalsClientName(t *testing.T) {
	dto := toSummaryDTO(domain.Summary{
		ID:             1,
		ContractNumber: "HD-2026-001",
		ClientName:     "Acme Ltd",
		TotalValue:     decimal.NewFromInt(1000),
	})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"client_name":"Acme Ltd"`)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindByID", mock.Anything, "client@example.com", int64(99)).
		Return(nil, shared.ErrNotFound)

	svc := NewService(repo, new(mockStatusSource), nil)
	_, err := svc.Get(context.Background(), "client@example.com", 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Statuses(t *testing.T) {
	src := new(mockStatusSource)
	src.On("Get", mock.Anything).Return([]domain.Status{
		{Code: "daky", Name: "Signed"},
		{Code: "duthao", Name: "Draft"},
	}, nil)

	svc := NewService(new(mockRepository), src, nil)
	statuses, err := svc.Statuses(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 2)
	assert.Equal(t, StatusDTO{Code: "daky", Name: "Signed"}, statuses[0])
}

func TestService_Stats(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Stats", mock.Anything, "client@example.com").Return(&domain.Stats{
		TotalContracts: 3,
		TotalValue:     decimal.NewFromInt(175000),
		ByStatus: []domain.StatusCount{
			{Code: "daky", Name: "Signed", Count: 2},
		},
	}, nil)

	svc := NewService(repo, new(mockStatusSource), nil)
	stats, err := svc.Stats(context.Background(), "client@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalContracts)
	require.Len(t, stats.ByStatus, 1)
	assert.Equal(t, int64(2), stats.ByStatus[0].Count)
}
