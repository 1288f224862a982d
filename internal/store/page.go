package store

// Pagination defaults and bounds for list queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest describes a requested slice of a list query.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to valid bounds: page floors at 1, limit
// falls back to the default when out of the 1..MaxLimit range.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed for total items at this
// request's limit, using ceiling division.
func (p PageRequest) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
