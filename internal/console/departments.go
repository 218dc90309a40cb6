package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/gateway"
)

// DepartmentsPage lists all departments. The backend returns the full
// unpaginated set; the active toggle and name search are applied
// client-side over the loaded list.
type DepartmentsPage struct {
	client *gateway.Client

	all []domain.Department
	err error

	search     string
	activeOnly bool
}

func NewDepartmentsPage(client *gateway.Client) *DepartmentsPage {
	return &DepartmentsPage{client: client}
}

func (p *DepartmentsPage) Load(ctx context.Context) error {
	all, err := p.client.Departments(ctx)
	if err != nil {
		p.err = err
		return fmt.Errorf("console: departments load: %w", err)
	}
	p.all = all
	p.err = nil
	return nil
}

func (p *DepartmentsPage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

func (p *DepartmentsPage) Err() error { return p.err }

// SetSearch narrows the visible list by name or description substring.
func (p *DepartmentsPage) SetSearch(q string) {
	p.search = q
}

// SetActiveOnly toggles hiding dormant departments.
func (p *DepartmentsPage) SetActiveOnly(on bool) {
	p.activeOnly = on
}

// Visible applies search and the active toggle to the loaded list.
func (p *DepartmentsPage) Visible() []domain.Department {
	out := make([]domain.Department, 0, len(p.all))
	for _, d := range p.all {
		if p.activeOnly && !d.IsActive {
			continue
		}
		if p.search != "" &&
			!strings.Contains(strings.ToLower(d.Name), strings.ToLower(p.search)) &&
			!strings.Contains(strings.ToLower(d.Description), strings.ToLower(p.search)) {
			continue
		}
		out = append(out, d)
	}
	return out
}
