package contract

import "context"

// Repository defines read operations over a client's contracts.
// All lookups are scoped by the owning client's email; implementations
// must apply identical conditions to count and data queries.
type Repository interface {
	// FindPage returns one page of contract summaries plus the total
	// number of rows matching the query conditions.
	FindPage(ctx context.Context, q Query) ([]Summary, int64, error)

	// FindByID returns the full detail of one contract owned by the
	// given client email, or shared.ErrNotFound.
	FindByID(ctx context.Context, clientEmail string, id int64) (*Detail, error)

	// DistinctStatuses returns the distinct status codes and names
	// ordered by name ascending.
	DistinctStatuses(ctx context.Context) ([]Status, error)

	// Stats aggregates contract counts and values for a client.
	Stats(ctx context.Context, clientEmail string) (*Stats, error)
}
