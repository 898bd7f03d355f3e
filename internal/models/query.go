package models

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortPopular SortKey = "popular"
)

// QueryState captures the transient browse input. Changing the search term,
// category or sort always resets Page to zero; only the explicit load-more
// action advances Page while keeping the other fields.
type QueryState struct {
	SearchTerm string  `json:"search_term"`
	Category   string  `json:"category"`
	Sort       SortKey `json:"sort"`
	Page       int     `json:"page"`
}
