package dto

// Search filters bound from the list query string. A value that fails its
// binding rule is treated as if no search was requested.
type TopicFilter struct {
	Name string `form:"name" binding:"max=70"`
}

type NewspaperFilter struct {
	Title string `form:"title" binding:"max=255"`
}

type RedactorFilter struct {
	Username string `form:"username" binding:"max=150"`
}

// SearchForm is echoed back to list pages so the search box keeps its value.
type SearchForm struct {
	Field       string `json:"field"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder"`
}

type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	Limit        int   `json:"limit"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     int   `json:"next_page,omitempty"`
	PreviousPage int   `json:"previous_page,omitempty"`
}

// Offset is the number of rows before the current page.
func (m PaginationMeta) Offset() int {
	return (m.CurrentPage - 1) * m.Limit
}
