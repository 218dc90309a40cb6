package console_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/taskdeck/internal/config"
	"github.com/gosuda/taskdeck/internal/console"
	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/fakeapi"
	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/session"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// newBackend wires the full stack: seeded fake backend, admin session,
// authenticated gateway client.
func newBackend(t *testing.T) (*gateway.Client, *fakeapi.Store) {
	t.Helper()

	store := fakeapi.Seed(42)
	srv := fakeapi.New(config.FakeConfig{
		Addr:      ":0",
		JWTSecret: testSecret,
	}, store, zerolog.Nop(), func() time.Time { return testNow })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tok, err := fakeapi.Mint(testSecret, "u-test", "Test Operator", "op@example.com", session.RoleAdmin, "", time.Hour)
	require.NoError(t, err)

	sessions := session.NewStore()
	sess, err := sessions.Login(tok)
	require.NoError(t, err)

	client, err := gateway.New(context.Background(), gateway.Options{
		BaseURL:     ts.URL,
		TokenSource: sess.TokenSource(),
		Timeout:     5 * time.Second,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)
	return client, store
}

// ---------------------------------------------------------------------------
// TestDashboardPage
// ---------------------------------------------------------------------------

func TestDashboardPage(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t)
	page := console.NewDashboardPage(client)
	page.Now = func() time.Time { return testNow }

	require.NoError(t, page.Load(context.Background()))
	require.NotNil(t, page.Data())

	assert.Equal(t, len(store.Tasks), page.Data().OverallStats.TotalTasks)

	byStatus := page.RecentByStatus()
	sum := 0
	for _, n := range byStatus {
		sum += n
	}
	assert.Equal(t, len(page.Data().RecentTasks), sum)
	assert.NotEqual(t, "", page.RecentCompletionRate())

	var buf bytes.Buffer
	page.Render(&buf)
	assert.Contains(t, buf.String(), "== Overview ==")
	assert.Contains(t, buf.String(), "Engineering")
}

// ---------------------------------------------------------------------------
// TestDepartmentsPage
// ---------------------------------------------------------------------------

func TestDepartmentsPage(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t)
	page := console.NewDepartmentsPage(client)
	require.NoError(t, page.Load(context.Background()))

	t.Run("all_visible_by_default", func(t *testing.T) {
		assert.Len(t, page.Visible(), len(store.Departments))
	})

	t.Run("search_narrows", func(t *testing.T) {
		page.SetSearch("engineering")
		visible := page.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, "Engineering", visible[0].Name)
		page.SetSearch("")
	})

	t.Run("active_only_hides_dormant", func(t *testing.T) {
		page.SetActiveOnly(true)
		for _, d := range page.Visible() {
			assert.True(t, d.IsActive)
		}
		assert.Less(t, len(page.Visible()), len(store.Departments))
		page.SetActiveOnly(false)
	})
}

// ---------------------------------------------------------------------------
// TestDepartmentDetailPage
// ---------------------------------------------------------------------------

func TestDepartmentDetailPage(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t)
	deptID := store.Departments[0].ID
	ctx := context.Background()

	page := console.NewDepartmentDetailPage(client, deptID, 5)
	require.NoError(t, page.Load(ctx))

	require.NotNil(t, page.Detail())
	assert.Equal(t, store.Departments[0].Name, page.Detail().Department.Name)
	assert.NotEmpty(t, page.Tasks().Items)
	assert.NotEmpty(t, page.Employees().Items)

	t.Run("listings_page_independently", func(t *testing.T) {
		require.NoError(t, page.TasksGoToPage(ctx, 2))
		assert.Equal(t, 2, page.TaskPager().DisplayPage())
		assert.Equal(t, 1, page.EmployeePager().DisplayPage())
	})

	t.Run("task_filter_reanchors_to_page_one", func(t *testing.T) {
		require.NoError(t, page.TasksGoToPage(ctx, 2))
		require.NoError(t, page.SetTaskFilter(ctx, "status", "pending"))
		assert.Equal(t, 1, page.TaskPager().DisplayPage())
		for _, task := range page.Tasks().Items {
			assert.Equal(t, domain.TaskStatusPending, task.Status)
		}
	})

	t.Run("invalid_filter_value_rejected", func(t *testing.T) {
		err := page.SetTaskFilter(ctx, "status", "exploded")
		assert.Error(t, err)
	})

	t.Run("render_includes_both_listings", func(t *testing.T) {
		var buf bytes.Buffer
		page.Render(&buf)
		assert.Contains(t, buf.String(), "== Tasks (sort createdAt-desc) ==")
		assert.Contains(t, buf.String(), "== Employees (sort name-asc) ==")
		assert.Contains(t, buf.String(), "page 1 of")
	})
}

// ---------------------------------------------------------------------------
// TestEmployeeDetailPage
// ---------------------------------------------------------------------------

func TestEmployeeDetailPage(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t)
	emp := store.Employees[0]
	ctx := context.Background()

	page := console.NewEmployeeDetailPage(client, emp.ID, 5)
	page.Now = func() time.Time { return testNow }
	require.NoError(t, page.Load(ctx))

	require.NotNil(t, page.Employee())
	assert.Equal(t, emp.Name, page.Employee().Name)

	// The fake backend sends the precomputed block; the page must prefer
	// it over the reducer fallback.
	stats := page.Stats()
	assert.Equal(t, len(store.EmployeeTasks(emp.ID)), stats.TotalTasks)
}

func TestEmployeeDetailStatsFallback(t *testing.T) {
	t.Parallel()

	// A backend that omits the stats block forces the reducer fallback.
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/employees/e1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"id":"e1","name":"Solo","email":"solo@example.com","role":"employee","isActive":true}}`)
	})
	mux.HandleFunc("/admin/employees/e1/tasks", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"tasks":[
			{"id":"t1","title":"a","status":"completed","priority":"low","createdAt":"2026-05-01T00:00:00Z"},
			{"id":"t2","title":"b","status":"pending","priority":"high","createdAt":"2026-05-02T00:00:00Z","deadline":"2026-05-10T00:00:00Z"}
		],"pagination":{"currentPage":1,"totalPages":1,"totalTasks":2,"hasNextPage":false,"hasPrevPage":false}}}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client, err := gateway.New(context.Background(), gateway.Options{BaseURL: ts.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	page := console.NewEmployeeDetailPage(client, "e1", 10)
	page.Now = func() time.Time { return testNow }
	require.NoError(t, page.Load(context.Background()))

	stats := page.Stats()
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 1, stats.OverdueTasks)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.01)
}

// ---------------------------------------------------------------------------
// TestReportPages
// ---------------------------------------------------------------------------

func TestReportPages(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t)
	ctx := context.Background()

	t.Run("system", func(t *testing.T) {
		t.Parallel()

		page := console.NewSystemReportPage(client)
		require.NoError(t, page.Load(ctx))
		require.NotNil(t, page.Data())

		shares := page.StatusShares()
		assert.NotEmpty(t, shares)
		for _, s := range shares {
			assert.NotEqual(t, "NaN", s)
		}

		var buf bytes.Buffer
		page.Render(&buf)
		assert.Contains(t, buf.String(), "== Department performance ==")
	})

	t.Run("department", func(t *testing.T) {
		t.Parallel()

		page := console.NewDepartmentReportPage(client, store.Departments[0].ID)
		page.StartDate = "2026-01-01"
		page.EndDate = "2026-12-31"
		require.NoError(t, page.Load(ctx))
		require.NotNil(t, page.Data())
		assert.NotEmpty(t, page.Data().EmployeePerformance)
	})
}

// ---------------------------------------------------------------------------
// TestErrorHandling
// ---------------------------------------------------------------------------

func TestErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("non_admin_role_is_access_denied", func(t *testing.T) {
		t.Parallel()

		store := fakeapi.Seed(42)
		srv := fakeapi.New(config.FakeConfig{Addr: ":0", JWTSecret: testSecret}, store, zerolog.Nop(), nil)
		ts := httptest.NewServer(srv.Handler())
		t.Cleanup(ts.Close)

		tok, err := fakeapi.Mint(testSecret, "u-emp", "Emp", "e@example.com", session.RoleEmployee, "", time.Hour)
		require.NoError(t, err)
		sessions := session.NewStore()
		sess, err := sessions.Login(tok)
		require.NoError(t, err)

		client, err := gateway.New(context.Background(), gateway.Options{
			BaseURL: ts.URL, TokenSource: sess.TokenSource(), Logger: zerolog.Nop(),
		})
		require.NoError(t, err)

		page := console.NewDashboardPage(client)
		err = page.Load(context.Background())
		require.Error(t, err)
		assert.True(t, console.AccessDenied(err))
		assert.False(t, console.Transient(err))
	})

	t.Run("transient_failure_keeps_last_good_data", func(t *testing.T) {
		t.Parallel()

		var unhealthy atomic.Bool
		mux := http.NewServeMux()
		mux.HandleFunc("/admin/departments/d1/tasks", func(w http.ResponseWriter, r *http.Request) {
			if unhealthy.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, `{"success":true,"data":{"tasks":[{"id":"t1","title":"keep me","status":"pending","priority":"low","createdAt":"2026-05-01T00:00:00Z"}],"pagination":{"currentPage":1,"totalPages":1,"totalTasks":1,"hasNextPage":false,"hasPrevPage":false}}}`)
		})
		mux.HandleFunc("/admin/departments/d1", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"success":true,"data":{"department":{"id":"d1","name":"Ops","isActive":true},"stats":{"totalTasks":1,"completedTasks":0,"activeTasks":1,"overdueTasks":0,"totalEmployees":0,"completionRate":0}}}`)
		})
		mux.HandleFunc("/admin/departments/d1/employees", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"success":true,"data":{"employees":[],"pagination":{"currentPage":1,"totalPages":0,"totalEmployees":0,"hasNextPage":false,"hasPrevPage":false}}}`)
		})
		ts := httptest.NewServer(mux)
		t.Cleanup(ts.Close)

		client, err := gateway.New(context.Background(), gateway.Options{BaseURL: ts.URL, Logger: zerolog.Nop()})
		require.NoError(t, err)

		ctx := context.Background()
		page := console.NewDepartmentDetailPage(client, "d1", 10)
		require.NoError(t, page.Load(ctx))
		require.Len(t, page.Tasks().Items, 1)

		unhealthy.Store(true)
		err = page.SetTaskFilter(ctx, "priority", "high")
		require.Error(t, err)
		assert.True(t, console.Transient(err))

		// Last good data survives the failed refetch.
		snap := page.Tasks()
		require.Len(t, snap.Items, 1)
		assert.Equal(t, "keep me", snap.Items[0].Title)
		assert.Error(t, snap.Err)

		var buf bytes.Buffer
		page.Render(&buf)
		assert.Contains(t, buf.String(), "backend unavailable")
		assert.Contains(t, buf.String(), "keep me")
	})
}

// ---------------------------------------------------------------------------
// TestStaleResponseDiscard
// ---------------------------------------------------------------------------

// A slow response for an earlier page must not overwrite the state of a
// later, faster request.
func TestStaleResponseDiscard(t *testing.T) {
	t.Parallel()

	page1Arrived := make(chan struct{})
	releasePage1 := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/departments/d1/tasks", func(w http.ResponseWriter, r *http.Request) {
		pageNum := r.URL.Query().Get("page")
		if pageNum == "1" {
			close(page1Arrived)
			<-releasePage1
		}
		fmt.Fprintf(w, `{"success":true,"data":{"tasks":[{"id":"t%s","title":"page %s task","status":"pending","priority":"low","createdAt":"2026-05-01T00:00:00Z"}],"pagination":{"currentPage":%s,"totalPages":3,"totalTasks":3,"hasNextPage":%t,"hasPrevPage":%t}}}`,
			pageNum, pageNum, pageNum, pageNum != "3", pageNum != "1")
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client, err := gateway.New(context.Background(), gateway.Options{BaseURL: ts.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	ctx := context.Background()
	page := console.NewDepartmentDetailPage(client, "d1", 1)

	done := make(chan error, 1)
	go func() {
		done <- page.TasksGoToPage(ctx, 1)
	}()
	<-page1Arrived

	// A newer request finishes while the first is still in flight.
	require.NoError(t, page.TasksGoToPage(ctx, 2))
	assert.Equal(t, 2, page.TaskPager().DisplayPage())

	close(releasePage1)
	require.NoError(t, <-done)

	// The late page-1 response was discarded.
	snap := page.Tasks()
	assert.Equal(t, 2, page.TaskPager().DisplayPage())
	require.Len(t, snap.Items, 1)
	assert.True(t, strings.HasPrefix(snap.Items[0].Title, "page 2"))
}

// A response issued under an outdated filter state must neither land as
// data nor surface as a failure once a newer filter change has gone
// through; the filter version ties each fetch to the state that issued
// it.
func TestOutdatedFilterResponseDiscard(t *testing.T) {
	t.Parallel()

	slowArrived := make(chan struct{})
	releaseSlow := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/departments/d1/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("search") {
		case "slow":
			close(slowArrived)
			<-releaseSlow
			w.WriteHeader(http.StatusBadGateway)
		default:
			fmt.Fprint(w, `{"success":true,"data":{"tasks":[{"id":"t1","title":"fresh","status":"pending","priority":"low","createdAt":"2026-05-01T00:00:00Z"}],"pagination":{"currentPage":1,"totalPages":1,"totalTasks":1,"hasNextPage":false,"hasPrevPage":false}}}`)
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client, err := gateway.New(context.Background(), gateway.Options{BaseURL: ts.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	ctx := context.Background()
	page := console.NewDepartmentDetailPage(client, "d1", 10)

	done := make(chan error, 1)
	go func() {
		done <- page.SetTaskFilter(ctx, "search", "slow")
	}()
	<-slowArrived

	require.NoError(t, page.SetTaskFilter(ctx, "search", "fresh"))
	close(releaseSlow)

	// The slow request came back a 502, but its filter state is long
	// gone: no error is reported and the fresh data stays.
	assert.NoError(t, <-done)
	snap := page.Tasks()
	assert.NoError(t, snap.Err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fresh", snap.Items[0].Title)
}
