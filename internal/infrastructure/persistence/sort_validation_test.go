package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"asc lowercase", "asc", "ASC"},
		{"asc uppercase", "ASC", "ASC"},
		{"asc mixed case", "Asc", "ASC"},
		{"desc lowercase", "desc", "DESC"},
		{"desc uppercase", "DESC", "DESC"},
		{"with whitespace", "  asc  ", "ASC"},
		{"empty", "", "DESC"},
		{"garbage", "sideways", "DESC"},
		{"sql injection attempt", "asc; DROP TABLE contracts--", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed created_at", "created_at", "created_at"},
		{"allowed contract_number", "contract_number", "contract_number"},
		{"allowed total_value", "total_value", "total_value"},
		{"allowed start_date", "start_date", "start_date"},
		{"allowed end_date", "end_date", "end_date"},
		{"not allowed column", "client_id", "created_at"},
		{"empty", "", "created_at"},
		{"with whitespace", "  total_value ", "total_value"},
		{"sql injection attempt", "created_at; DELETE FROM contracts", "created_at"},
		{"subquery injection", "(SELECT password_hash FROM clients)", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ContractSortFields, "created_at"))
		})
	}
}
