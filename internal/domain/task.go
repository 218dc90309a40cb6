package domain

import "time"

type TaskStatus string

const (
	TaskStatusCreated     TaskStatus = "created"
	TaskStatusAssigned    TaskStatus = "assigned"
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusApproved    TaskStatus = "approved"
	TaskStatusRejected    TaskStatus = "rejected"
	TaskStatusCancelled   TaskStatus = "cancelled"
	TaskStatusTransferred TaskStatus = "transferred"

	// TaskStatusUnknown is the catch-all bucket for values the backend
	// sends that this client does not recognize.
	TaskStatusUnknown TaskStatus = "unknown"
)

// ParseTaskStatus maps a wire value to a known status. Anything
// unrecognized (including the empty string) degrades to unknown.
func ParseTaskStatus(s string) TaskStatus {
	switch TaskStatus(s) {
	case TaskStatusCreated, TaskStatusAssigned, TaskStatusPending,
		TaskStatusCompleted, TaskStatusApproved, TaskStatusRejected,
		TaskStatusCancelled, TaskStatusTransferred:
		return TaskStatus(s)
	default:
		return TaskStatusUnknown
	}
}

// Done reports whether the status counts toward the completion rate.
// completed and approved are distinct raw statuses but one semantic
// bucket; the distinction is kept for display only.
func (s TaskStatus) Done() bool {
	return s == TaskStatusCompleted || s == TaskStatusApproved
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"

	TaskPriorityUnknown TaskPriority = "unknown"
)

// ParseTaskPriority maps a wire value to a known priority, degrading
// unrecognized values to unknown.
func ParseTaskPriority(s string) TaskPriority {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(s)
	default:
		return TaskPriorityUnknown
	}
}

// Task is a task record as served by the admin backend. The client never
// mutates tasks; records are read-only snapshots of server state.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	Deadline     time.Time    `json:"deadline,omitzero"`
	CreatedAt    time.Time    `json:"createdAt"`
	DepartmentID string       `json:"departmentId,omitempty"`
	CreatedBy    string       `json:"createdBy,omitempty"`
	AssignedTo   []string     `json:"assignedTo,omitempty"`
}

// Overdue reports whether the task's deadline has passed. Done tasks are
// never overdue regardless of deadline; tasks without a deadline never
// become overdue. now is injected so callers stay deterministic.
func (t Task) Overdue(now time.Time) bool {
	if t.Deadline.IsZero() || t.Status.Done() {
		return false
	}
	return t.Deadline.Before(now)
}
