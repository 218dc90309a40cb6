// Package fakeapi is a development stand-in for the admin REST backend.
// It serves the console's fixed API contract from an in-memory fixture
// set so the CLI and the end-to-end tests can run without the real
// backend. It is tooling, not a reimplementation: the contract is owned
// by the external service.
package fakeapi

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/taskdeck/internal/domain"
)

// Store is the in-memory dataset behind the fake backend. It is built
// once at startup and read-only afterwards, so handlers need no locking.
type Store struct {
	Departments []domain.Department
	Employees   []domain.Employee
	Tasks       []domain.Task
}

var (
	seedDepartments = []string{"Engineering", "Operations", "Finance", "People", "Legal"}
	seedRoles       = []string{"employee", "employee", "employee", "hod", "overviewer"}
	seedStatuses    = []domain.TaskStatus{
		domain.TaskStatusCreated,
		domain.TaskStatusAssigned,
		domain.TaskStatusPending,
		domain.TaskStatusPending,
		domain.TaskStatusCompleted,
		domain.TaskStatusApproved,
		domain.TaskStatusRejected,
		domain.TaskStatusCancelled,
		domain.TaskStatusTransferred,
	}
	seedPriorities = []domain.TaskPriority{
		domain.TaskPriorityLow,
		domain.TaskPriorityMedium,
		domain.TaskPriorityMedium,
		domain.TaskPriorityHigh,
		domain.TaskPriorityUrgent,
	}
	seedVerbs = []string{"Review", "Prepare", "Audit", "Migrate", "Draft", "Approve", "Archive", "Reconcile"}
	seedNouns = []string{"quarterly report", "onboarding checklist", "vendor contract", "budget forecast", "incident postmortem", "access policy", "payroll run", "inventory ledger"}
)

// Seed builds a deterministic fixture set. The same seed always produces
// the same departments, employees and tasks (IDs included), which keeps
// demo sessions and test assertions stable.
func Seed(seed int64) *Store {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // fixtures, not crypto
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	s := &Store{}

	for di, name := range seedDepartments {
		dept := domain.Department{
			ID:          deterministicID(rng),
			Name:        name,
			Description: name + " department",
			IsActive:    di != len(seedDepartments)-1, // last one is dormant
		}

		var memberIDs []string
		for ei := 0; ei < 4+rng.Intn(5); ei++ {
			emp := domain.Employee{
				ID:           deterministicID(rng),
				Name:         fmt.Sprintf("%s Member %d", name, ei+1),
				Email:        fmt.Sprintf("%s.%d@example.com", strings.ToLower(name), ei+1),
				Role:         seedRoles[rng.Intn(len(seedRoles))],
				IsActive:     rng.Intn(10) != 0,
				DepartmentID: dept.ID,
			}
			s.Employees = append(s.Employees, emp)
			memberIDs = append(memberIDs, emp.ID)
		}

		hod := memberIDs[0]
		dept.HeadOfDepartment = &hod
		s.Departments = append(s.Departments, dept)

		for ti := 0; ti < 15+rng.Intn(20); ti++ {
			created := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
			task := domain.Task{
				ID:           deterministicID(rng),
				Title:        seedVerbs[rng.Intn(len(seedVerbs))] + " " + seedNouns[rng.Intn(len(seedNouns))],
				Description:  "Seeded fixture task",
				Status:       seedStatuses[rng.Intn(len(seedStatuses))],
				Priority:     seedPriorities[rng.Intn(len(seedPriorities))],
				CreatedAt:    created,
				Deadline:     created.Add(time.Duration(1+rng.Intn(30*24)) * time.Hour),
				DepartmentID: dept.ID,
				CreatedBy:    hod,
				AssignedTo:   []string{memberIDs[rng.Intn(len(memberIDs))]},
			}
			s.Tasks = append(s.Tasks, task)
		}
	}

	return s
}

// deterministicID draws a UUID from the seeded source so fixtures are
// reproducible run to run.
func deterministicID(rng *rand.Rand) string {
	var b [16]byte
	_, _ = rng.Read(b[:])
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Department returns the department with the given ID.
func (s *Store) Department(id string) (domain.Department, bool) {
	for _, d := range s.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Department{}, false
}

// Employee returns the employee with the given ID.
func (s *Store) Employee(id string) (domain.Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

// DepartmentTasks returns all tasks of one department.
func (s *Store) DepartmentTasks(id string) []domain.Task {
	var out []domain.Task
	for _, t := range s.Tasks {
		if t.DepartmentID == id {
			out = append(out, t)
		}
	}
	return out
}

// DepartmentEmployees returns all employees of one department.
func (s *Store) DepartmentEmployees(id string) []domain.Employee {
	var out []domain.Employee
	for _, e := range s.Employees {
		if e.DepartmentID == id {
			out = append(out, e)
		}
	}
	return out
}

// EmployeeTasks returns all tasks assigned to one employee.
func (s *Store) EmployeeTasks(id string) []domain.Task {
	var out []domain.Task
	for _, t := range s.Tasks {
		for _, a := range t.AssignedTo {
			if a == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
