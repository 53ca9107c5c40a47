package domain

import "math"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
	DefaultSortBy     = "createdAt"

	// MaxPageNumber keeps Skip within a Postgres integer OFFSET
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryParams holds the normalized pagination, sorting and search options of a list request
type QueryParams struct {
	PageNumber      int
	PageSize        int
	SortBy          string
	SortDirection   SortDirection
	SearchNameTerm  string
	SearchLoginTerm string
	SearchEmailTerm string
}

// Skip is the number of items preceding the requested page
func (q QueryParams) Skip() int {
	return (q.PageNumber - 1) * q.PageSize
}

// Page is one page of a paginated list
type Page[T any] struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

func NewPage[T any](items []T, total int, q QueryParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if q.PageSize > 0 {
		pages = (total + q.PageSize - 1) / q.PageSize
	}
	return &Page[T]{
		PagesCount: pages,
		Page:       q.PageNumber,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}
}
