// Package filter holds the per-page filter record and the coordinator
// that mutates it. Changing any field other than the page number
// re-anchors pagination to page 1 so new results always start from the
// first page.
package filter

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Filter keys accepted by Coordinator.Set.
const (
	KeyPage         = "page"
	KeyLimit        = "limit"
	KeyStatus       = "status"
	KeyPriority     = "priority"
	KeySearch       = "search"
	KeySortBy       = "sortBy"
	KeySortOrder    = "sortOrder"
	KeySort         = "sort" // composite "field-direction"
	KeyStartDate    = "startDate"
	KeyEndDate      = "endDate"
	KeyDepartmentID = "departmentId"
	KeyAssignedTo   = "assignedTo"
	KeyRole         = "role"
	KeyIsActive     = "isActive"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// Filter is the mutable filter record of one paginated resource. It is
// created with defaults when the page mounts and never persisted across
// sessions.
type Filter struct {
	Page         int    `validate:"gte=1"`
	Limit        int    `validate:"gte=1,lte=100"`
	Status       string `validate:"omitempty,oneof=created assigned pending completed approved rejected cancelled transferred"`
	Priority     string `validate:"omitempty,oneof=low medium high urgent"`
	Search       string
	SortBy       string `validate:"omitempty,oneof=createdAt deadline title priority status name email"`
	SortOrder    string `validate:"omitempty,oneof=asc desc"`
	StartDate    *time.Time
	EndDate      *time.Time
	DepartmentID string
	AssignedTo   string
	Role         string
	IsActive     *bool
}

// Default returns the filter state a freshly mounted page starts with.
func Default(limit int) Filter {
	return Filter{
		Page:      1,
		Limit:     limit,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}
}

// Sort encodes sortBy+sortOrder as the single composite control value.
func (f Filter) Sort() string {
	return f.SortBy + "-" + f.SortOrder
}

// Query serializes the filter into backend query parameters. Unset
// optional fields are omitted entirely.
func (f Filter) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("limit", strconv.Itoa(f.Limit))
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.Format(dateLayout))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.Format(dateLayout))
	}
	if f.DepartmentID != "" {
		q.Set("departmentId", f.DepartmentID)
	}
	if f.AssignedTo != "" {
		q.Set("assignedTo", f.AssignedTo)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	return q
}
