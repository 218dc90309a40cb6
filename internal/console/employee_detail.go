package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/filter"
	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/paginate"
	"github.com/gosuda/taskdeck/internal/report"
)

// EmployeeDetailPage shows one employee plus their paginated task list.
// The stats card uses the backend's precomputed block when present and
// falls back to reducing the loaded task list when the backend omits it.
type EmployeeDetailPage struct {
	client *gateway.Client
	id     string

	Now func() time.Time

	employee    *domain.Employee
	employeeErr error

	tasks *resource[domain.Task]
}

func NewEmployeeDetailPage(client *gateway.Client, id string, pageLimit int) *EmployeeDetailPage {
	p := &EmployeeDetailPage{client: client, id: id, Now: time.Now}

	p.tasks = newResource(filter.Default(pageLimit), func(ctx context.Context, f filter.Filter) ([]domain.Task, domain.Pagination, error) {
		page, err := client.EmployeeTasks(ctx, id, f)
		if err != nil {
			return nil, domain.Pagination{}, err
		}
		return page.Tasks, page.Pagination, nil
	})

	return p
}

// Load fetches the employee header and the first task page in parallel.
func (p *EmployeeDetailPage) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	var empErr, tasksErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		emp, err := p.client.Employee(ctx, p.id)
		if err != nil {
			empErr = err
			return
		}
		p.employee = emp
	}()
	go func() {
		defer wg.Done()
		tasksErr = p.tasks.load(ctx)
	}()
	wg.Wait()

	p.employeeErr = empErr
	if err := errors.Join(empErr, tasksErr); err != nil {
		return fmt.Errorf("console: employee %s load: %w", p.id, err)
	}
	return nil
}

func (p *EmployeeDetailPage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

func (p *EmployeeDetailPage) Employee() *domain.Employee { return p.employee }

func (p *EmployeeDetailPage) EmployeeErr() error { return p.employeeErr }

func (p *EmployeeDetailPage) SetFilter(ctx context.Context, key, value string) error {
	return p.tasks.setFilter(ctx, key, value)
}

func (p *EmployeeDetailPage) GoToPage(ctx context.Context, n int) error {
	return p.tasks.goToPage(ctx, n)
}

func (p *EmployeeDetailPage) Tasks() paginate.Snapshot[domain.Task] {
	return p.tasks.pager.Snapshot()
}

func (p *EmployeeDetailPage) Pager() *paginate.Coordinator[domain.Task] {
	return p.tasks.pager
}

// Stats returns the employee's task summary: the backend's precomputed
// block when it sent one, otherwise a reduction over the currently
// loaded task page.
func (p *EmployeeDetailPage) Stats() domain.EmployeeStats {
	if p.employee != nil && p.employee.Stats != nil {
		return *p.employee.Stats
	}

	snap := p.tasks.pager.Snapshot()
	done := 0
	for _, t := range snap.Items {
		if t.Status.Done() {
			done++
		}
	}
	stats := domain.EmployeeStats{
		TotalTasks:     len(snap.Items),
		CompletedTasks: done,
		ActiveTasks:    len(snap.Items) - done,
		OverdueTasks:   report.OverdueCount(snap.Items, p.Now()),
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(done) / float64(stats.TotalTasks) * 100
	}
	return stats
}
