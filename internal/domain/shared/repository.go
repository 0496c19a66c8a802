package shared

// Pagination defaults and bounds shared by every list query.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// PageRequest is the pagination part of a list query.
type PageRequest struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// WithDefaults fills zero values with the defaults.
func (p PageRequest) WithDefaults() PageRequest {
	if p.PageNumber == 0 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Limit returns the number of rows to take.
func (p PageRequest) Limit() int {
	return p.PageSize
}

// PagedList is one page of a list query together with the total match count.
// Page counts are derived, never stored.
type PagedList[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
}

// NewPagedList creates a paged list. A nil items slice is replaced by an empty one.
func NewPagedList[T any](items []T, totalCount int64, pageNumber, pageSize int) PagedList[T] {
	if items == nil {
		items = []T{}
	}
	return PagedList[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// TotalPages is ceil(TotalCount / PageSize); zero when nothing matched.
func (p PagedList[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((p.TotalCount + size - 1) / size)
}

// HasPreviousPage reports whether a page precedes this one.
func (p PagedList[T]) HasPreviousPage() bool {
	return p.PageNumber > 1
}

// HasNextPage reports whether a page follows this one.
func (p PagedList[T]) HasNextPage() bool {
	return p.PageNumber < p.TotalPages()
}

// MapPagedList projects the items of a page, keeping its metadata.
func MapPagedList[T, U any](p PagedList[T], fn func(T) U) PagedList[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return NewPagedList(out, p.TotalCount, p.PageNumber, p.PageSize)
}
