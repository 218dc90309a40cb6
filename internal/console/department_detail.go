package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/filter"
	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/paginate"
)

// DepartmentDetailPage shows one department's header plus two fully
// independent paginated listings, its tasks and its employees. Each
// listing owns its own filter and pagination coordinator; paging or
// filtering one never disturbs the other.
type DepartmentDetailPage struct {
	client *gateway.Client
	id     string

	detail    *gateway.DepartmentDetail
	detailErr error

	tasks     *resource[domain.Task]
	employees *resource[domain.Employee]
}

func NewDepartmentDetailPage(client *gateway.Client, id string, pageLimit int) *DepartmentDetailPage {
	p := &DepartmentDetailPage{client: client, id: id}

	p.tasks = newResource(filter.Default(pageLimit), func(ctx context.Context, f filter.Filter) ([]domain.Task, domain.Pagination, error) {
		page, err := client.DepartmentTasks(ctx, id, f)
		if err != nil {
			return nil, domain.Pagination{}, err
		}
		return page.Tasks, page.Pagination, nil
	})

	empFilter := filter.Default(pageLimit)
	empFilter.SortBy = "name"
	empFilter.SortOrder = "asc"
	p.employees = newResource(empFilter, func(ctx context.Context, f filter.Filter) ([]domain.Employee, domain.Pagination, error) {
		page, err := client.DepartmentEmployees(ctx, id, f)
		if err != nil {
			return nil, domain.Pagination{}, err
		}
		return page.Employees, page.Pagination, nil
	})

	return p
}

// Load fetches the header and both listings in parallel. Partial
// failure is fine: each listing keeps its own error and last good data,
// and the combined error is returned for the banner.
func (p *DepartmentDetailPage) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	var detailErr, tasksErr, empsErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		detail, err := p.client.Department(ctx, p.id)
		if err != nil {
			detailErr = err
			return
		}
		p.detail = detail
	}()
	go func() {
		defer wg.Done()
		tasksErr = p.tasks.load(ctx)
	}()
	go func() {
		defer wg.Done()
		empsErr = p.employees.load(ctx)
	}()
	wg.Wait()

	p.detailErr = detailErr
	if err := errors.Join(detailErr, tasksErr, empsErr); err != nil {
		return fmt.Errorf("console: department %s load: %w", p.id, err)
	}
	return nil
}

func (p *DepartmentDetailPage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

// Detail returns the department header, nil before the first successful
// load.
func (p *DepartmentDetailPage) Detail() *gateway.DepartmentDetail { return p.detail }

func (p *DepartmentDetailPage) DetailErr() error { return p.detailErr }

// SetTaskFilter changes one task-listing filter and refetches only the
// task listing.
func (p *DepartmentDetailPage) SetTaskFilter(ctx context.Context, key, value string) error {
	return p.tasks.setFilter(ctx, key, value)
}

// SetEmployeeFilter changes one employee-listing filter and refetches
// only the employee listing.
func (p *DepartmentDetailPage) SetEmployeeFilter(ctx context.Context, key, value string) error {
	return p.employees.setFilter(ctx, key, value)
}

func (p *DepartmentDetailPage) TasksGoToPage(ctx context.Context, n int) error {
	return p.tasks.goToPage(ctx, n)
}

func (p *DepartmentDetailPage) EmployeesGoToPage(ctx context.Context, n int) error {
	return p.employees.goToPage(ctx, n)
}

func (p *DepartmentDetailPage) Tasks() paginate.Snapshot[domain.Task] {
	return p.tasks.pager.Snapshot()
}

func (p *DepartmentDetailPage) Employees() paginate.Snapshot[domain.Employee] {
	return p.employees.pager.Snapshot()
}

func (p *DepartmentDetailPage) TaskPager() *paginate.Coordinator[domain.Task] {
	return p.tasks.pager
}

func (p *DepartmentDetailPage) EmployeePager() *paginate.Coordinator[domain.Employee] {
	return p.employees.pager
}
