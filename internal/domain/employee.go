package domain

// EmployeeStats is the backend's precomputed per-employee task summary.
// It is optional on the wire; pages fall back to reducing the employee's
// task list when it is absent.
type EmployeeStats struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	ActiveTasks    int     `json:"activeTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	CompletionRate float64 `json:"completionRate"`
}

type Employee struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	IsActive     bool           `json:"isActive"`
	DepartmentID string         `json:"departmentId,omitempty"`
	Stats        *EmployeeStats `json:"stats,omitempty"`
}
