package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/paginate"
)

// Rendering is deliberately thin: tables, card blocks and ASCII bars.
// All layout decisions live here so the page controllers stay pure
// state machines.

const barWidth = 20

func progressBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func errorBanner(w io.Writer, err error) {
	if err == nil {
		return
	}
	switch {
	case AccessDenied(err):
		fmt.Fprintln(w, "!! access denied: this screen requires admin rights")
	case Transient(err):
		fmt.Fprintln(w, "!! backend unavailable, showing last loaded data (retry to refresh)")
	default:
		fmt.Fprintf(w, "!! %v\n", err)
	}
}

func pagerLine[T any](w io.Writer, pager *paginate.Coordinator[T]) {
	fmt.Fprintf(w, "page %d of %d", pager.DisplayPage(), pager.DisplayTotalPages())
	if pager.CanPrev() {
		fmt.Fprint(w, "  [prev]")
	}
	if pager.CanNext() {
		fmt.Fprint(w, "  [next]")
	}
	fmt.Fprintln(w)
}

func taskTable(w io.Writer, tasks []domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tSTATUS\tPRIORITY\tDEADLINE")
	for _, t := range tasks {
		deadline := "-"
		if !t.Deadline.IsZero() {
			deadline = t.Deadline.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Title, t.Status, t.Priority, deadline)
	}
	tw.Flush()
}

func employeeTable(w io.Writer, emps []domain.Employee) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tROLE\tACTIVE")
	for _, e := range emps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", e.Name, e.Email, e.Role, e.IsActive)
	}
	tw.Flush()
}

func countBars(w io.Writer, counts map[string]int, shares map[string]string) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, label := range labels {
		fmt.Fprintf(tw, "%s\t%d\t%s%%\n", label, counts[label], shares[label])
	}
	tw.Flush()
}

// RenderDashboard writes the dashboard screen.
func (p *DashboardPage) Render(w io.Writer) {
	errorBanner(w, p.err)
	if p.data == nil {
		fmt.Fprintln(w, "no data loaded")
		return
	}

	s := p.data.OverallStats
	fmt.Fprintln(w, "== Overview ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "tasks\t%d\n", s.TotalTasks)
	fmt.Fprintf(tw, "completed\t%d\n", s.CompletedTasks)
	fmt.Fprintf(tw, "active\t%d\n", s.ActiveTasks)
	fmt.Fprintf(tw, "overdue\t%d\n", s.OverdueTasks)
	fmt.Fprintf(tw, "employees\t%d\n", s.TotalEmployees)
	fmt.Fprintf(tw, "completion\t%.1f%% %s\n", s.CompletionRate, progressBar(s.CompletionRate))
	tw.Flush()

	fmt.Fprintln(w, "\n== Departments ==")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTASKS\tDONE\tOVERDUE\tRATE")
	for _, d := range p.data.DepartmentStats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", d.Name, d.TotalTasks, d.CompletedTasks, d.OverdueTasks, d.CompletionRate)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n== Recent tasks (completion %s%%, %d overdue) ==\n",
		p.RecentCompletionRate(), p.RecentOverdue())
	taskTable(w, p.data.RecentTasks)
}

// Render writes the department list screen.
func (p *DepartmentsPage) Render(w io.Writer) {
	errorBanner(w, p.err)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tACTIVE\tDESCRIPTION")
	for _, d := range p.Visible() {
		fmt.Fprintf(tw, "%s\t%t\t%s\n", d.Name, d.IsActive, d.Description)
	}
	tw.Flush()
}

// Render writes the department detail screen: header card plus the two
// listings with their own pager lines.
func (p *DepartmentDetailPage) Render(w io.Writer) {
	errorBanner(w, p.detailErr)
	if p.detail != nil {
		d := p.detail.Department
		st := p.detail.Stats
		fmt.Fprintf(w, "== %s ==\n", d.Name)
		if d.Description != "" {
			fmt.Fprintln(w, d.Description)
		}
		fmt.Fprintf(w, "tasks %d (done %d, overdue %d), employees %d, completion %.1f%% %s\n",
			st.TotalTasks, st.CompletedTasks, st.OverdueTasks, st.TotalEmployees,
			st.CompletionRate, progressBar(st.CompletionRate))
	}

	tasks := p.Tasks()
	fmt.Fprintf(w, "\n== Tasks (sort %s) ==\n", p.tasks.filters.Current().Sort())
	errorBanner(w, tasks.Err)
	taskTable(w, tasks.Items)
	pagerLine(w, p.tasks.pager)

	emps := p.Employees()
	fmt.Fprintf(w, "\n== Employees (sort %s) ==\n", p.employees.filters.Current().Sort())
	errorBanner(w, emps.Err)
	employeeTable(w, emps.Items)
	pagerLine(w, p.employees.pager)
}

// Render writes the employee detail screen.
func (p *EmployeeDetailPage) Render(w io.Writer) {
	errorBanner(w, p.employeeErr)
	if p.employee != nil {
		e := p.employee
		fmt.Fprintf(w, "== %s <%s> ==\n", e.Name, e.Email)
		fmt.Fprintf(w, "role %s, active %t\n", e.Role, e.IsActive)
	}

	st := p.Stats()
	fmt.Fprintf(w, "tasks %d (done %d, active %d, overdue %d), completion %.1f%% %s\n",
		st.TotalTasks, st.CompletedTasks, st.ActiveTasks, st.OverdueTasks,
		st.CompletionRate, progressBar(st.CompletionRate))

	tasks := p.Tasks()
	fmt.Fprintf(w, "\n== Tasks (sort %s) ==\n", p.tasks.filters.Current().Sort())
	errorBanner(w, tasks.Err)
	taskTable(w, tasks.Items)
	pagerLine(w, p.tasks.pager)
}

// Render writes the system report screen.
func (p *SystemReportPage) Render(w io.Writer) {
	errorBanner(w, p.err)
	if p.data == nil {
		fmt.Fprintln(w, "no data loaded")
		return
	}

	fmt.Fprintln(w, "== Tasks by status ==")
	countBars(w, statusCountMap(p.data.TasksByStatus), p.StatusShares())

	fmt.Fprintln(w, "\n== Tasks by priority ==")
	prio := make(map[string]int, len(p.data.TasksByPriority))
	for _, c := range p.data.TasksByPriority {
		prio[c.Priority] = c.Count
	}
	countBars(w, prio, p.PriorityShares())

	fmt.Fprintln(w, "\n== Department performance ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTASKS\tDONE\tOVERDUE\tRATE")
	for _, d := range p.data.DepartmentPerformance {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", d.Name, d.TotalTasks, d.CompletedTasks, d.OverdueTasks, d.CompletionRate)
	}
	tw.Flush()

	fmt.Fprintln(w, "\n== User activity ==")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTASKS\tDONE\tRATE")
	for _, u := range p.data.UserActivity {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", u.Name, u.TotalTasks, u.CompletedTasks, u.CompletionRate)
	}
	tw.Flush()
}

// Render writes the department report screen.
func (p *DepartmentReportPage) Render(w io.Writer) {
	errorBanner(w, p.err)
	if p.data == nil {
		fmt.Fprintln(w, "no data loaded")
		return
	}

	fmt.Fprintln(w, "== Tasks by status ==")
	countBars(w, statusCountMap(p.data.TasksByStatus), p.StatusShares())

	fmt.Fprintln(w, "\n== Employee performance ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTASKS\tDONE\tOVERDUE\tRATE")
	for _, e := range p.data.EmployeePerformance {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", e.Name, e.TotalTasks, e.CompletedTasks, e.OverdueTasks, e.CompletionRate)
	}
	tw.Flush()
}
