package persistence

import "strings"

// ValidateSortOrder validates a sort direction and returns a safe SQL keyword.
// Unknown values fall back to DESC.
func ValidateSortOrder(order string) string {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	default:
		return "DESC"
	}
}

// ValidateSortField checks a sort field against an allow-list and returns
// the field if allowed, or the default field otherwise. Only allow-listed
// column names ever reach an ORDER BY clause.
func ValidateSortField(field string, allowed map[string]bool, defaultField string) string {
	field = strings.TrimSpace(field)
	if allowed[field] {
		return field
	}
	return defaultField
}

// ContractSortFields lists the contract columns clients may sort by
var ContractSortFields = map[string]bool{
	"created_at":      true,
	"contract_number": true,
	"total_value":     true,
	"start_date":      true,
	"end_date":        true,
}
