package domain

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PageQuery holds the paging preferences of list endpoints.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q PageQuery) Normalize() PageQuery {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if normalized.Limit <= 0 {
		normalized.Limit = defaultPageLimit
	}
	if normalized.Limit > maxPageLimit {
		normalized.Limit = maxPageLimit
	}
	return normalized
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Paginate cuts items down to the requested page. Pages past the end are empty.
func Paginate[T any](items []T, query PageQuery) Page[T] {
	q := query.Normalize()
	page := Page[T]{Items: []T{}, Total: len(items), Page: q.Page, Limit: q.Limit}
	start := (q.Page - 1) * q.Limit
	if start >= len(items) {
		return page
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	page.Items = items[start:end]
	return page
}
