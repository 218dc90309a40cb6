package domain

// StatusCount is one status bucket of a server-side report.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one priority bucket of a server-side report.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// OverallStats is the system-wide summary on the admin dashboard.
type OverallStats struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	ActiveTasks    int     `json:"activeTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	TotalEmployees int     `json:"totalEmployees"`
	CompletionRate float64 `json:"completionRate"`
}

type DepartmentPerformance struct {
	DepartmentID   string  `json:"departmentId"`
	Name           string  `json:"name"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	CompletionRate float64 `json:"completionRate"`
}

type UserActivity struct {
	UserID         string  `json:"userId"`
	Name           string  `json:"name"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

type EmployeePerformance struct {
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// SystemReport is the payload of GET /admin/reports/system.
type SystemReport struct {
	TasksByStatus         []StatusCount           `json:"tasksByStatus"`
	TasksByPriority       []PriorityCount         `json:"tasksByPriority"`
	DepartmentPerformance []DepartmentPerformance `json:"departmentPerformance"`
	UserActivity          []UserActivity          `json:"userActivity"`
}

// DepartmentReport is the payload of GET /admin/departments/{id}/reports.
type DepartmentReport struct {
	TasksByStatus       []StatusCount         `json:"tasksByStatus"`
	TasksByPriority     []PriorityCount       `json:"tasksByPriority"`
	EmployeePerformance []EmployeePerformance `json:"employeePerformance"`
}
