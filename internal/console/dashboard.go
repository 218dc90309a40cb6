package console

import (
	"context"
	"fmt"
	"time"

	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/report"
)

// DashboardPage is the system-wide landing screen: overall stats,
// per-department performance, and reducer rollups over the recent task
// feed.
type DashboardPage struct {
	client *gateway.Client

	// Now is injectable so overdue counts are deterministic in tests.
	Now func() time.Time

	data *gateway.DashboardData
	err  error
}

func NewDashboardPage(client *gateway.Client) *DashboardPage {
	return &DashboardPage{client: client, Now: time.Now}
}

// Load fetches the dashboard payload. On transient failure the previous
// payload is kept and Err reports the banner-worthy error.
func (p *DashboardPage) Load(ctx context.Context) error {
	data, err := p.client.Dashboard(ctx)
	if err != nil {
		p.err = err
		return fmt.Errorf("console: dashboard load: %w", err)
	}
	p.data = data
	p.err = nil
	return nil
}

// Retry re-runs the last fetch.
func (p *DashboardPage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

func (p *DashboardPage) Err() error { return p.err }

// Data returns the last good payload, nil before the first successful
// load.
func (p *DashboardPage) Data() *gateway.DashboardData { return p.data }

// RecentByStatus buckets the recent task feed by status.
func (p *DashboardPage) RecentByStatus() map[string]int {
	if p.data == nil {
		return map[string]int{}
	}
	return report.BucketCount(p.data.RecentTasks, report.ByStatus)
}

// RecentByPriority buckets the recent task feed by priority.
func (p *DashboardPage) RecentByPriority() map[string]int {
	if p.data == nil {
		return map[string]int{}
	}
	return report.BucketCount(p.data.RecentTasks, report.ByPriority)
}

// RecentCompletionRate is the completion rate over the recent task feed,
// formatted to one decimal.
func (p *DashboardPage) RecentCompletionRate() string {
	if p.data == nil {
		return "0.0"
	}
	return report.CompletionRate(p.data.RecentTasks)
}

// RecentOverdue counts overdue tasks in the recent feed.
func (p *DashboardPage) RecentOverdue() int {
	if p.data == nil {
		return 0
	}
	return report.OverdueCount(p.data.RecentTasks, p.Now())
}
