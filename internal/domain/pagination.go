package domain

import "encoding/json"

// Pagination is the backend's per-resource pagination block. It is always
// taken verbatim from the most recent server response, never derived
// client-side.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// UnmarshalJSON accepts the backend's per-resource spellings of the item
// total: totalItems, totalTasks or totalEmployees.
func (p *Pagination) UnmarshalJSON(b []byte) error {
	var raw struct {
		CurrentPage    int  `json:"currentPage"`
		TotalPages     int  `json:"totalPages"`
		TotalItems     *int `json:"totalItems"`
		TotalTasks     *int `json:"totalTasks"`
		TotalEmployees *int `json:"totalEmployees"`
		HasNextPage    bool `json:"hasNextPage"`
		HasPrevPage    bool `json:"hasPrevPage"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	p.CurrentPage = raw.CurrentPage
	p.TotalPages = raw.TotalPages
	p.HasNextPage = raw.HasNextPage
	p.HasPrevPage = raw.HasPrevPage

	switch {
	case raw.TotalItems != nil:
		p.TotalItems = *raw.TotalItems
	case raw.TotalTasks != nil:
		p.TotalItems = *raw.TotalTasks
	case raw.TotalEmployees != nil:
		p.TotalItems = *raw.TotalEmployees
	default:
		p.TotalItems = 0
	}

	return nil
}
