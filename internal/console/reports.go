package console

import (
	"context"
	"fmt"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/report"
)

// SystemReportPage fetches the system-wide report for a date range,
// optionally scoped to one department.
type SystemReportPage struct {
	client *gateway.Client

	StartDate    string
	EndDate      string
	DepartmentID string

	data *domain.SystemReport
	err  error
}

func NewSystemReportPage(client *gateway.Client) *SystemReportPage {
	return &SystemReportPage{client: client}
}

func (p *SystemReportPage) Load(ctx context.Context) error {
	data, err := p.client.SystemReport(ctx, p.StartDate, p.EndDate, p.DepartmentID)
	if err != nil {
		p.err = err
		return fmt.Errorf("console: system report load: %w", err)
	}
	p.data = data
	p.err = nil
	return nil
}

func (p *SystemReportPage) Retry(ctx context.Context) error { return p.Load(ctx) }

func (p *SystemReportPage) Err() error { return p.err }

func (p *SystemReportPage) Data() *domain.SystemReport { return p.data }

// StatusShares converts the status buckets into percentage strings for
// the distribution bars.
func (p *SystemReportPage) StatusShares() map[string]string {
	if p.data == nil {
		return map[string]string{}
	}
	return report.Percentages(statusCountMap(p.data.TasksByStatus))
}

// PriorityShares converts the priority buckets into percentage strings.
func (p *SystemReportPage) PriorityShares() map[string]string {
	if p.data == nil {
		return map[string]string{}
	}
	counts := make(map[string]int, len(p.data.TasksByPriority))
	for _, c := range p.data.TasksByPriority {
		counts[c.Priority] = c.Count
	}
	return report.Percentages(counts)
}

// DepartmentReportPage fetches one department's report for a date range.
type DepartmentReportPage struct {
	client *gateway.Client
	id     string

	StartDate string
	EndDate   string

	data *domain.DepartmentReport
	err  error
}

func NewDepartmentReportPage(client *gateway.Client, id string) *DepartmentReportPage {
	return &DepartmentReportPage{client: client, id: id}
}

func (p *DepartmentReportPage) Load(ctx context.Context) error {
	data, err := p.client.DepartmentReport(ctx, p.id, p.StartDate, p.EndDate)
	if err != nil {
		p.err = err
		return fmt.Errorf("console: department report %s load: %w", p.id, err)
	}
	p.data = data
	p.err = nil
	return nil
}

func (p *DepartmentReportPage) Retry(ctx context.Context) error { return p.Load(ctx) }

func (p *DepartmentReportPage) Err() error { return p.err }

func (p *DepartmentReportPage) Data() *domain.DepartmentReport { return p.data }

func (p *DepartmentReportPage) StatusShares() map[string]string {
	if p.data == nil {
		return map[string]string{}
	}
	return report.Percentages(statusCountMap(p.data.TasksByStatus))
}

func statusCountMap(counts []domain.StatusCount) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Status] = c.Count
	}
	return out
}
