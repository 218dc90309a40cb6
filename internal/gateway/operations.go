package gateway

import (
	"context"
	"net/url"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/filter"
)

// DashboardData is the payload of GET /admin/dashboard.
type DashboardData struct {
	OverallStats    domain.OverallStats            `json:"overallStats"`
	DepartmentStats []domain.DepartmentPerformance `json:"departmentStats"`
	RecentTasks     []domain.Task                  `json:"recentTasks"`
}

// DepartmentDetail is the payload of GET /admin/departments/{id}.
type DepartmentDetail struct {
	Department domain.Department      `json:"department"`
	Stats      domain.DepartmentStats `json:"stats"`
}

// TaskPage is one page of a paginated task listing.
type TaskPage struct {
	Tasks      []domain.Task     `json:"tasks"`
	Pagination domain.Pagination `json:"pagination"`
}

// EmployeePage is one page of a paginated employee listing.
type EmployeePage struct {
	Employees  []domain.Employee `json:"employees"`
	Pagination domain.Pagination `json:"pagination"`
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var out DashboardData
	if err := c.get(ctx, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Departments(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	if err := c.get(ctx, "/admin/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Department(ctx context.Context, id string) (*DepartmentDetail, error) {
	var out DepartmentDetail
	if err := c.get(ctx, "/admin/departments/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DepartmentTasks(ctx context.Context, id string, f filter.Filter) (*TaskPage, error) {
	var out TaskPage
	path := "/admin/departments/" + url.PathEscape(id) + "/tasks"
	if err := c.get(ctx, path, f.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DepartmentEmployees(ctx context.Context, id string, f filter.Filter) (*EmployeePage, error) {
	var out EmployeePage
	path := "/admin/departments/" + url.PathEscape(id) + "/employees"
	if err := c.get(ctx, path, f.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemReport fetches the system-wide report, optionally scoped by date
// range and department.
func (c *Client) SystemReport(ctx context.Context, startDate, endDate, departmentID string) (*domain.SystemReport, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	if departmentID != "" {
		q.Set("departmentId", departmentID)
	}

	var out domain.SystemReport
	if err := c.get(ctx, "/admin/reports/system", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DepartmentReport(ctx context.Context, id, startDate, endDate string) (*domain.DepartmentReport, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}

	var out domain.DepartmentReport
	path := "/admin/departments/" + url.PathEscape(id) + "/reports"
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Employee(ctx context.Context, id string) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.get(ctx, "/admin/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EmployeeTasks(ctx context.Context, id string, f filter.Filter) (*TaskPage, error) {
	var out TaskPage
	path := "/admin/employees/" + url.PathEscape(id) + "/tasks"
	if err := c.get(ctx, path, f.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
