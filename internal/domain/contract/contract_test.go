package contract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDetail_PaymentProgress(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		paid     int64
		expected string
	}{
		{"partial", 100000, 40000, "40"},
		{"fully paid", 100000, 100000, "100"},
		{"overpaid clamps to 100", 100000, 150000, "100"},
		{"nothing paid", 100000, 0, "0"},
		{"zero value contract", 0, 5000, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Detail{
				Summary:    Summary{TotalValue: decimal.NewFromInt(tt.total)},
				PaidAmount: decimal.NewFromInt(tt.paid),
			}
			assert.Equal(t, tt.expected, d.PaymentProgress().String())
		})
	}
}

func TestQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Limit: 12}.Offset())
	assert.Equal(t, 12, Query{Page: 2, Limit: 12}.Offset())
	assert.Equal(t, 50, Query{Page: 3, Limit: 25}.Offset())
}
