package fakeapi

import (
	"sort"
	"strings"
	"time"

	"github.com/gosuda/taskdeck/internal/domain"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

var priorityRank = map[domain.TaskPriority]int{
	domain.TaskPriorityLow:    0,
	domain.TaskPriorityMedium: 1,
	domain.TaskPriorityHigh:   2,
	domain.TaskPriorityUrgent: 3,
}

type taskQuery struct {
	Status     string
	Priority   string
	Search     string
	AssignedTo string
	Start      *time.Time
	End        *time.Time
	SortBy     string
	SortOrder  string
}

func filterTasks(tasks []domain.Task, q taskQuery) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Status != "" && string(t.Status) != q.Status {
			continue
		}
		if q.Priority != "" && string(t.Priority) != q.Priority {
			continue
		}
		if q.AssignedTo != "" && !assignedTo(t, q.AssignedTo) {
			continue
		}
		if q.Search != "" && !containsFold(t.Title, q.Search) && !containsFold(t.Description, q.Search) {
			continue
		}
		if q.Start != nil && t.CreatedAt.Before(*q.Start) {
			continue
		}
		if q.End != nil && t.CreatedAt.After(q.End.Add(24*time.Hour)) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, q.SortBy, q.SortOrder)
	return out
}

func assignedTo(t domain.Task, id string) bool {
	for _, a := range t.AssignedTo {
		if a == id {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortTasks(tasks []domain.Task, by, order string) {
	desc := order != "asc"
	less := func(i, j int) bool {
		var l bool
		switch by {
		case "deadline":
			l = tasks[i].Deadline.Before(tasks[j].Deadline)
		case "title":
			l = tasks[i].Title < tasks[j].Title
		case "priority":
			l = priorityRank[tasks[i].Priority] < priorityRank[tasks[j].Priority]
		case "status":
			l = tasks[i].Status < tasks[j].Status
		default: // createdAt
			l = tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		if desc {
			return !l
		}
		return l
	}
	sort.SliceStable(tasks, less)
}

type employeeQuery struct {
	Search    string
	Role      string
	IsActive  *bool
	SortBy    string
	SortOrder string
}

func filterEmployees(emps []domain.Employee, q employeeQuery) []domain.Employee {
	out := make([]domain.Employee, 0, len(emps))
	for _, e := range emps {
		if q.Role != "" && e.Role != q.Role {
			continue
		}
		if q.IsActive != nil && e.IsActive != *q.IsActive {
			continue
		}
		if q.Search != "" && !containsFold(e.Name, q.Search) && !containsFold(e.Email, q.Search) {
			continue
		}
		out = append(out, e)
	}

	desc := q.SortOrder == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		var l bool
		switch q.SortBy {
		case "email":
			l = out[i].Email < out[j].Email
		default: // name
			l = out[i].Name < out[j].Name
		}
		if desc {
			return !l
		}
		return l
	})

	return out
}

// page slices one window out of the filtered set and derives the
// pagination block the way the real backend does: an empty result set
// reports totalPages=0 with both directions disabled, and an
// out-of-range page is clamped to the last page rather than erroring.
func page[T any](items []T, pageNum, limit int) ([]T, domain.Pagination) {
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	if total == 0 {
		return nil, domain.Pagination{
			CurrentPage: 1,
			TotalPages:  0,
			TotalItems:  0,
		}
	}

	if pageNum > totalPages {
		pageNum = totalPages
	}

	lo := (pageNum - 1) * limit
	hi := lo + limit
	if hi > total {
		hi = total
	}

	return items[lo:hi], domain.Pagination{
		CurrentPage: pageNum,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: pageNum < totalPages,
		HasPrevPage: pageNum > 1,
	}
}

func parseDateParam(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}
