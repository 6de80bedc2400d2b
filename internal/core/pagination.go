// internal/core/pagination.go
package core

import (
	"fmt"
	"net/url"
	"strconv"
)

// Default and limit constants for list pagination
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery holds parsed pagination parameters for list endpoints.
// Pagination is applied in memory after loading the full candidate set;
// acceptable at the current scale, a known ceiling for large datasets.
type PageQuery struct {
	Page  int
	Limit int
}

// ParsePageQuery extracts 'page' and 'limit' from query parameters, applying
// defaults and bounds. Returns a validation error for malformed values.
func ParsePageQuery(queryParams url.Values) (*PageQuery, error) {
	pq := &PageQuery{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if pageStr := queryParams.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'page' parameter: must be an integer")
		}
		if page < 1 {
			return nil, fmt.Errorf("invalid 'page' parameter: must be at least 1")
		}
		pq.Page = page
	}

	if limitStr := queryParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'limit' parameter: must be an integer")
		}
		if limit < 1 {
			return nil, fmt.Errorf("invalid 'limit' parameter: must be at least 1")
		}
		if limit > MaxLimit {
			return nil, fmt.Errorf("invalid 'limit' parameter: maximum is %d", MaxLimit)
		}
		pq.Limit = limit
	}

	return pq, nil
}

// Bounds returns the [start, end) slice indexes for a list of total items.
// A page past the end yields an empty window. The page check happens before
// the multiplication so a huge page value cannot overflow into a negative
// slice index.
func (pq *PageQuery) Bounds(total int) (int, int) {
	if pq.Page > total/pq.Limit+1 {
		return total, total
	}
	start := (pq.Page - 1) * pq.Limit
	if start > total {
		start = total
	}
	end := start + pq.Limit
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages returns the number of pages needed to cover total items.
func (pq *PageQuery) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + pq.Limit - 1) / pq.Limit
}
