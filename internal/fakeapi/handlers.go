package fakeapi

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/report"
)

// envelope is the backend's fixed response wrapper.
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// The pagination block spells its total differently per resource. The
// console's decoder accepts every spelling; the fake must produce the
// same wire shapes the real backend does.
type taskPagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalTasks  int  `json:"totalTasks"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type employeePagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalEmployees int  `json:"totalEmployees"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
}

type dashboardData struct {
	OverallStats    domain.OverallStats            `json:"overallStats"`
	DepartmentStats []domain.DepartmentPerformance `json:"departmentStats"`
	RecentTasks     []domain.Task                  `json:"recentTasks"`
}

type departmentDetail struct {
	Department domain.Department      `json:"department"`
	Stats      domain.DepartmentStats `json:"stats"`
}

type taskListData struct {
	Tasks      []domain.Task  `json:"tasks"`
	Pagination taskPagination `json:"pagination"`
}

type employeeListData struct {
	Employees  []domain.Employee  `json:"employees"`
	Pagination employeePagination `json:"pagination"`
}

type dashboardOutput struct {
	Body envelope[dashboardData]
}

type departmentsOutput struct {
	Body envelope[[]domain.Department]
}

type departmentInput struct {
	ID string `path:"id" doc:"Department ID"`
}

type departmentOutput struct {
	Body envelope[departmentDetail]
}

type departmentTasksInput struct {
	ID         string `path:"id" doc:"Department ID"`
	Page       int    `query:"page" default:"1"`
	Limit      int    `query:"limit" default:"10"`
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	Search     string `query:"search"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	AssignedTo string `query:"assignedTo"`
}

type taskListOutput struct {
	Body envelope[taskListData]
}

type departmentEmployeesInput struct {
	ID        string `path:"id" doc:"Department ID"`
	Page      int    `query:"page" default:"1"`
	Limit     int    `query:"limit" default:"10"`
	Search    string `query:"search"`
	IsActive  string `query:"isActive"`
	Role      string `query:"role"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type employeeListOutput struct {
	Body envelope[employeeListData]
}

type systemReportInput struct {
	StartDate    string `query:"startDate"`
	EndDate      string `query:"endDate"`
	DepartmentID string `query:"departmentId"`
}

type systemReportOutput struct {
	Body envelope[domain.SystemReport]
}

type departmentReportInput struct {
	ID        string `path:"id" doc:"Department ID"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

type departmentReportOutput struct {
	Body envelope[domain.DepartmentReport]
}

type employeeInput struct {
	ID string `path:"id" doc:"Employee ID"`
}

type employeeOutput struct {
	Body envelope[domain.Employee]
}

type employeeTasksInput struct {
	ID        string `path:"id" doc:"Employee ID"`
	Page      int    `query:"page" default:"1"`
	Limit     int    `query:"limit" default:"10"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

func registerRoutes(api huma.API, store *Store, now func() time.Time) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Admin dashboard rollup",
		Tags:        []string{"Dashboard"},
	}, func(_ context.Context, _ *struct{}) (*dashboardOutput, error) {
		return &dashboardOutput{Body: envelope[dashboardData]{
			Success: true,
			Data:    buildDashboard(store, now()),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-departments",
		Method:      http.MethodGet,
		Path:        "/departments",
		Summary:     "List all departments",
		Tags:        []string{"Departments"},
	}, func(_ context.Context, _ *struct{}) (*departmentsOutput, error) {
		return &departmentsOutput{Body: envelope[[]domain.Department]{
			Success: true,
			Data:    store.Departments,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-department",
		Method:      http.MethodGet,
		Path:        "/departments/{id}",
		Summary:     "Get a department with stats",
		Tags:        []string{"Departments"},
	}, func(_ context.Context, input *departmentInput) (*departmentOutput, error) {
		dept, ok := store.Department(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("department not found")
		}
		return &departmentOutput{Body: envelope[departmentDetail]{
			Success: true,
			Data: departmentDetail{
				Department: dept,
				Stats:      departmentStats(store, dept.ID, now()),
			},
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-department-tasks",
		Method:      http.MethodGet,
		Path:        "/departments/{id}/tasks",
		Summary:     "List a department's tasks",
		Tags:        []string{"Departments", "Tasks"},
	}, func(_ context.Context, input *departmentTasksInput) (*taskListOutput, error) {
		if _, ok := store.Department(input.ID); !ok {
			return nil, huma.Error404NotFound("department not found")
		}

		matched := filterTasks(store.DepartmentTasks(input.ID), taskQuery{
			Status:     input.Status,
			Priority:   input.Priority,
			Search:     input.Search,
			AssignedTo: input.AssignedTo,
			Start:      parseDateParam(input.StartDate),
			End:        parseDateParam(input.EndDate),
			SortBy:     input.SortBy,
			SortOrder:  input.SortOrder,
		})
		items, pg := page(matched, input.Page, input.Limit)

		return &taskListOutput{Body: envelope[taskListData]{
			Success: true,
			Data: taskListData{
				Tasks: items,
				Pagination: taskPagination{
					CurrentPage: pg.CurrentPage,
					TotalPages:  pg.TotalPages,
					TotalTasks:  pg.TotalItems,
					HasNextPage: pg.HasNextPage,
					HasPrevPage: pg.HasPrevPage,
				},
			},
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-department-employees",
		Method:      http.MethodGet,
		Path:        "/departments/{id}/employees",
		Summary:     "List a department's employees",
		Tags:        []string{"Departments", "Employees"},
	}, func(_ context.Context, input *departmentEmployeesInput) (*employeeListOutput, error) {
		if _, ok := store.Department(input.ID); !ok {
			return nil, huma.Error404NotFound("department not found")
		}

		q := employeeQuery{
			Search:    input.Search,
			Role:      input.Role,
			SortBy:    input.SortBy,
			SortOrder: input.SortOrder,
		}
		if input.IsActive != "" {
			active, err := strconv.ParseBool(input.IsActive)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("isActive must be a boolean")
			}
			q.IsActive = &active
		}

		matched := filterEmployees(store.DepartmentEmployees(input.ID), q)
		items, pg := page(matched, input.Page, input.Limit)

		return &employeeListOutput{Body: envelope[employeeListData]{
			Success: true,
			Data: employeeListData{
				Employees: items,
				Pagination: employeePagination{
					CurrentPage:    pg.CurrentPage,
					TotalPages:     pg.TotalPages,
					TotalEmployees: pg.TotalItems,
					HasNextPage:    pg.HasNextPage,
					HasPrevPage:    pg.HasPrevPage,
				},
			},
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "system-report",
		Method:      http.MethodGet,
		Path:        "/reports/system",
		Summary:     "System-wide task report",
		Tags:        []string{"Reports"},
	}, func(_ context.Context, input *systemReportInput) (*systemReportOutput, error) {
		tasks := store.Tasks
		if input.DepartmentID != "" {
			if _, ok := store.Department(input.DepartmentID); !ok {
				return nil, huma.Error404NotFound("department not found")
			}
			tasks = store.DepartmentTasks(input.DepartmentID)
		}
		tasks = filterTasks(tasks, taskQuery{
			Start: parseDateParam(input.StartDate),
			End:   parseDateParam(input.EndDate),
		})

		return &systemReportOutput{Body: envelope[domain.SystemReport]{
			Success: true,
			Data:    buildSystemReport(store, tasks, now()),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "department-report",
		Method:      http.MethodGet,
		Path:        "/departments/{id}/reports",
		Summary:     "Department-scoped task report",
		Tags:        []string{"Reports"},
	}, func(_ context.Context, input *departmentReportInput) (*departmentReportOutput, error) {
		if _, ok := store.Department(input.ID); !ok {
			return nil, huma.Error404NotFound("department not found")
		}

		tasks := filterTasks(store.DepartmentTasks(input.ID), taskQuery{
			Start: parseDateParam(input.StartDate),
			End:   parseDateParam(input.EndDate),
		})

		return &departmentReportOutput{Body: envelope[domain.DepartmentReport]{
			Success: true,
			Data:    buildDepartmentReport(store, input.ID, tasks, now()),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-employee",
		Method:      http.MethodGet,
		Path:        "/employees/{id}",
		Summary:     "Get an employee with stats",
		Tags:        []string{"Employees"},
	}, func(_ context.Context, input *employeeInput) (*employeeOutput, error) {
		emp, ok := store.Employee(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("employee not found")
		}
		stats := employeeStats(store, emp.ID, now())
		emp.Stats = &stats
		return &employeeOutput{Body: envelope[domain.Employee]{
			Success: true,
			Data:    emp,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-employee-tasks",
		Method:      http.MethodGet,
		Path:        "/employees/{id}/tasks",
		Summary:     "List an employee's tasks",
		Tags:        []string{"Employees", "Tasks"},
	}, func(_ context.Context, input *employeeTasksInput) (*taskListOutput, error) {
		if _, ok := store.Employee(input.ID); !ok {
			return nil, huma.Error404NotFound("employee not found")
		}

		matched := filterTasks(store.EmployeeTasks(input.ID), taskQuery{
			Status:    input.Status,
			Priority:  input.Priority,
			Search:    input.Search,
			SortBy:    input.SortBy,
			SortOrder: input.SortOrder,
		})
		items, pg := page(matched, input.Page, input.Limit)

		return &taskListOutput{Body: envelope[taskListData]{
			Success: true,
			Data: taskListData{
				Tasks: items,
				Pagination: taskPagination{
					CurrentPage: pg.CurrentPage,
					TotalPages:  pg.TotalPages,
					TotalTasks:  pg.TotalItems,
					HasNextPage: pg.HasNextPage,
					HasPrevPage: pg.HasPrevPage,
				},
			},
		}}, nil
	})
}

func buildDashboard(store *Store, now time.Time) dashboardData {
	recent := append([]domain.Task(nil), store.Tasks...)
	sortTasks(recent, "createdAt", "desc")
	if len(recent) > 10 {
		recent = recent[:10]
	}

	perf := make([]domain.DepartmentPerformance, 0, len(store.Departments))
	for _, d := range store.Departments {
		perf = append(perf, departmentPerformance(store, d, now))
	}

	return dashboardData{
		OverallStats:    overallStats(store, now),
		DepartmentStats: perf,
		RecentTasks:     recent,
	}
}

func overallStats(store *Store, now time.Time) domain.OverallStats {
	done := 0
	for _, t := range store.Tasks {
		if t.Status.Done() {
			done++
		}
	}
	return domain.OverallStats{
		TotalTasks:     len(store.Tasks),
		CompletedTasks: done,
		ActiveTasks:    len(store.Tasks) - done,
		OverdueTasks:   report.OverdueCount(store.Tasks, now),
		TotalEmployees: len(store.Employees),
		CompletionRate: rate(done, len(store.Tasks)),
	}
}

func departmentPerformance(store *Store, d domain.Department, now time.Time) domain.DepartmentPerformance {
	tasks := store.DepartmentTasks(d.ID)
	done := 0
	for _, t := range tasks {
		if t.Status.Done() {
			done++
		}
	}
	return domain.DepartmentPerformance{
		DepartmentID:   d.ID,
		Name:           d.Name,
		TotalTasks:     len(tasks),
		CompletedTasks: done,
		OverdueTasks:   report.OverdueCount(tasks, now),
		CompletionRate: rate(done, len(tasks)),
	}
}

func departmentStats(store *Store, id string, now time.Time) domain.DepartmentStats {
	tasks := store.DepartmentTasks(id)
	done := 0
	for _, t := range tasks {
		if t.Status.Done() {
			done++
		}
	}
	return domain.DepartmentStats{
		TotalTasks:     len(tasks),
		CompletedTasks: done,
		ActiveTasks:    len(tasks) - done,
		OverdueTasks:   report.OverdueCount(tasks, now),
		TotalEmployees: len(store.DepartmentEmployees(id)),
		CompletionRate: rate(done, len(tasks)),
	}
}

func employeeStats(store *Store, id string, now time.Time) domain.EmployeeStats {
	tasks := store.EmployeeTasks(id)
	done := 0
	for _, t := range tasks {
		if t.Status.Done() {
			done++
		}
	}
	return domain.EmployeeStats{
		TotalTasks:     len(tasks),
		CompletedTasks: done,
		ActiveTasks:    len(tasks) - done,
		OverdueTasks:   report.OverdueCount(tasks, now),
		CompletionRate: rate(done, len(tasks)),
	}
}

func buildSystemReport(store *Store, tasks []domain.Task, now time.Time) domain.SystemReport {
	perf := make([]domain.DepartmentPerformance, 0, len(store.Departments))
	for _, d := range store.Departments {
		perf = append(perf, departmentPerformance(store, d, now))
	}

	byUser := make(map[string][2]int)
	for _, t := range tasks {
		for _, uid := range t.AssignedTo {
			c := byUser[uid]
			c[0]++
			if t.Status.Done() {
				c[1]++
			}
			byUser[uid] = c
		}
	}
	activity := make([]domain.UserActivity, 0, len(byUser))
	for uid, c := range byUser {
		emp, ok := store.Employee(uid)
		if !ok {
			continue
		}
		activity = append(activity, domain.UserActivity{
			UserID:         uid,
			Name:           emp.Name,
			TotalTasks:     c[0],
			CompletedTasks: c[1],
			CompletionRate: rate(c[1], c[0]),
		})
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].Name < activity[j].Name })

	return domain.SystemReport{
		TasksByStatus:         statusCounts(tasks),
		TasksByPriority:       priorityCounts(tasks),
		DepartmentPerformance: perf,
		UserActivity:          activity,
	}
}

func buildDepartmentReport(store *Store, deptID string, tasks []domain.Task, now time.Time) domain.DepartmentReport {
	emps := store.DepartmentEmployees(deptID)
	perf := make([]domain.EmployeePerformance, 0, len(emps))
	for _, e := range emps {
		st := employeeStats(store, e.ID, now)
		perf = append(perf, domain.EmployeePerformance{
			EmployeeID:     e.ID,
			Name:           e.Name,
			TotalTasks:     st.TotalTasks,
			CompletedTasks: st.CompletedTasks,
			OverdueTasks:   st.OverdueTasks,
			CompletionRate: st.CompletionRate,
		})
	}

	return domain.DepartmentReport{
		TasksByStatus:       statusCounts(tasks),
		TasksByPriority:     priorityCounts(tasks),
		EmployeePerformance: perf,
	}
}

func statusCounts(tasks []domain.Task) []domain.StatusCount {
	counts := report.BucketCount(tasks, report.ByStatus)
	out := make([]domain.StatusCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, domain.StatusCount{Status: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

func priorityCounts(tasks []domain.Task) []domain.PriorityCount {
	counts := report.BucketCount(tasks, report.ByPriority)
	out := make([]domain.PriorityCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, domain.PriorityCount{Priority: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func rate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
