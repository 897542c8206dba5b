package types

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// Has reports whether the filter carries a non-empty value for field.
func (f Filter) Has(field string) bool {
	v, ok := f.Filter[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// String returns the filter value for field as a string, or "" when absent.
func (f Filter) String(field string) string {
	if s, ok := f.Filter[field].(string); ok {
		return s
	}
	return ""
}

// http://localhost:8080/api/requests?teamId=t1&stage=New&sort[createdAt]=desc&limit=10&page=2
