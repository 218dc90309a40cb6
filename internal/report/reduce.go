// Package report contains the pure reducers behind every report-bearing
// admin page: bucketed counts, completion rates, overdue counts and
// cross-tabulations over task collections already fetched from the
// backend. All functions are deterministic and never fail on malformed
// records; bad data degrades to the "unknown" bucket.
package report

import (
	"fmt"
	"time"

	"github.com/gosuda/taskdeck/internal/domain"
)

// KeyFunc extracts the bucket label for one task.
type KeyFunc func(domain.Task) string

// ByStatus buckets by raw task status, folding unrecognized or missing
// values into "unknown".
func ByStatus(t domain.Task) string {
	return string(domain.ParseTaskStatus(string(t.Status)))
}

// ByPriority buckets by task priority, folding unrecognized or missing
// values into "unknown".
func ByPriority(t domain.Task) string {
	return string(domain.ParseTaskPriority(string(t.Priority)))
}

// ByDepartment buckets by department reference.
func ByDepartment(t domain.Task) string {
	if t.DepartmentID == "" {
		return "unknown"
	}
	return t.DepartmentID
}

// BucketCount counts tasks per bucket label in a single pass. Labels with
// no tasks do not appear in the output; callers treat a missing key as
// zero. The sum of all values always equals len(tasks).
func BucketCount(tasks []domain.Task, key KeyFunc) map[string]int {
	counts := make(map[string]int, 8)
	for _, t := range tasks {
		counts[key(t)]++
	}
	return counts
}

// CompletionRate returns the share of tasks whose status is completed or
// approved, formatted to one decimal place. An empty input yields "0.0",
// never NaN.
func CompletionRate(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "0.0"
	}
	done := 0
	for _, t := range tasks {
		if t.Status.Done() {
			done++
		}
	}
	return fmt.Sprintf("%.1f", float64(done)/float64(len(tasks))*100)
}

// OverdueCount counts tasks past their deadline. Completed and approved
// tasks are never overdue, even with a deadline in the past. now is a
// parameter so the reducer stays clock-free.
func OverdueCount(tasks []domain.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Overdue(now) {
			n++
		}
	}
	return n
}

// CrossTab builds a group × bucket count table. Each task contributes
// exactly one increment to exactly one cell.
func CrossTab(tasks []domain.Task, group, bucket KeyFunc) map[string]map[string]int {
	tab := make(map[string]map[string]int)
	for _, t := range tasks {
		g := group(t)
		row, ok := tab[g]
		if !ok {
			row = make(map[string]int, 8)
			tab[g] = row
		}
		row[bucket(t)]++
	}
	return tab
}

// Percentages converts bucket counts into per-bucket shares formatted to
// one decimal place. When the total of all buckets is zero every share is
// "0.0" rather than NaN.
func Percentages(counts map[string]int) map[string]string {
	total := 0
	for _, c := range counts {
		total += c
	}

	out := make(map[string]string, len(counts))
	for label, c := range counts {
		if total == 0 {
			out[label] = "0.0"
			continue
		}
		out[label] = fmt.Sprintf("%.1f", float64(c)/float64(total)*100)
	}
	return out
}
