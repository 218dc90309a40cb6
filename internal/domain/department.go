package domain

// DepartmentStats mirrors EmployeeStats at department aggregate level.
type DepartmentStats struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	ActiveTasks    int     `json:"activeTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	TotalEmployees int     `json:"totalEmployees"`
	CompletionRate float64 `json:"completionRate"`
}

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`

	// HeadOfDepartment is the HOD employee reference; nil when the seat
	// is vacant.
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`

	Stats *DepartmentStats `json:"stats,omitempty"`
}
