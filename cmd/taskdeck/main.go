package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskdeck/internal/config"
	"github.com/gosuda/taskdeck/internal/console"
	"github.com/gosuda/taskdeck/internal/fakeapi"
	"github.com/gosuda/taskdeck/internal/gateway"
	"github.com/gosuda/taskdeck/internal/session"
)

const usage = `usage: taskdeck <command> [flags]

commands:
  dashboard              system-wide overview
  departments            department listing
  department <id>        department detail with tasks and employees
  employee <id>          employee detail with task list
  report system          system-wide report
  report department <id> department-scoped report
  serve-fake             run the in-memory development backend
  mint-token             issue a development bearer token
`

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("taskdeck failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	level, parseErr := zerolog.ParseLevel(os.Getenv("TASKDECK_LOG_LEVEL"))
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("TASKDECK_LOG_FORMAT") == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "dashboard":
		return runDashboard(ctx, cfg)
	case "departments":
		return runDepartments(ctx, cfg, args[1:])
	case "department":
		return runDepartment(ctx, cfg, args[1:])
	case "employee":
		return runEmployee(ctx, cfg, args[1:])
	case "report":
		return runReport(ctx, cfg, args[1:])
	case "serve-fake":
		return runServeFake(ctx, cfg)
	case "mint-token":
		return runMintToken(cfg, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// newClient builds the gateway client from config, logging in with the
// configured token when one is set.
func newClient(ctx context.Context, cfg *config.Config) (*gateway.Client, error) {
	opts := gateway.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Logger:            log.Logger,
	}

	if cfg.API.Token != "" {
		sessions := session.NewStore()
		sess, err := sessions.Login(cfg.API.Token)
		if err != nil {
			return nil, err
		}
		if !sess.IsAdmin() {
			log.Warn().Str("role", sess.Role).Msg("token is not an admin token, expect 403s")
		}
		opts.TokenSource = sess.TokenSource()
	}

	return gateway.New(ctx, opts)
}

func runDashboard(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	page := console.NewDashboardPage(client)
	if err := page.Load(ctx); err != nil {
		return err
	}
	page.Render(os.Stdout)
	return nil
}

func runDepartments(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("departments", flag.ContinueOnError)
	search := fs.String("search", "", "substring match on name or description")
	activeOnly := fs.Bool("active", false, "hide dormant departments")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	page := console.NewDepartmentsPage(client)
	if err := page.Load(ctx); err != nil {
		return err
	}
	page.SetSearch(*search)
	page.SetActiveOnly(*activeOnly)
	page.Render(os.Stdout)
	return nil
}

func runDepartment(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("department", flag.ContinueOnError)
	pageNum := fs.Int("page", 1, "task list page")
	status := fs.String("status", "", "task status filter")
	priority := fs.String("priority", "", "task priority filter")
	search := fs.String("search", "", "task search")
	sort := fs.String("sort", "", "composite sort, e.g. deadline-asc")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskdeck department [flags] <id>")
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	page := console.NewDepartmentDetailPage(client, fs.Arg(0), cfg.PageLimit)
	if err := page.Load(ctx); err != nil {
		return err
	}
	for key, val := range map[string]string{
		"status": *status, "priority": *priority, "search": *search, "sort": *sort,
	} {
		if val == "" {
			continue
		}
		if err := page.SetTaskFilter(ctx, key, val); err != nil {
			return err
		}
	}
	if *pageNum > 1 {
		if err := page.TasksGoToPage(ctx, *pageNum); err != nil {
			return err
		}
	}
	page.Render(os.Stdout)
	return nil
}

func runEmployee(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("employee", flag.ContinueOnError)
	pageNum := fs.Int("page", 1, "task list page")
	status := fs.String("status", "", "task status filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskdeck employee [flags] <id>")
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	page := console.NewEmployeeDetailPage(client, fs.Arg(0), cfg.PageLimit)
	if err := page.Load(ctx); err != nil {
		return err
	}
	if *status != "" {
		if err := page.SetFilter(ctx, "status", *status); err != nil {
			return err
		}
	}
	if *pageNum > 1 {
		if err := page.GoToPage(ctx, *pageNum); err != nil {
			return err
		}
	}
	page.Render(os.Stdout)
	return nil
}

func runReport(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: taskdeck report system|department <id>")
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	startDate := fs.String("start", "", "start date (2006-01-02)")
	endDate := fs.String("end", "", "end date (2006-01-02)")
	deptScope := fs.String("department-id", "", "scope the system report to one department")

	switch args[0] {
	case "system":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		client, err := newClient(ctx, cfg)
		if err != nil {
			return err
		}
		page := console.NewSystemReportPage(client)
		page.StartDate = *startDate
		page.EndDate = *endDate
		page.DepartmentID = *deptScope
		if err := page.Load(ctx); err != nil {
			return err
		}
		page.Render(os.Stdout)
		return nil
	case "department":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: taskdeck report department [flags] <id>")
		}
		client, err := newClient(ctx, cfg)
		if err != nil {
			return err
		}
		page := console.NewDepartmentReportPage(client, fs.Arg(0))
		page.StartDate = *startDate
		page.EndDate = *endDate
		if err := page.Load(ctx); err != nil {
			return err
		}
		page.Render(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown report %q", args[0])
	}
}

func runServeFake(ctx context.Context, cfg *config.Config) error {
	store := fakeapi.Seed(cfg.Fake.Seed)
	srv := fakeapi.New(cfg.Fake, store, log.Logger, nil)

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Error().Err(err).Msg("fake backend error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMintToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mint-token", flag.ContinueOnError)
	userID := fs.String("user", "dev-admin", "user id claim")
	name := fs.String("name", "Dev Admin", "display name claim")
	email := fs.String("email", "admin@example.com", "email claim")
	role := fs.String("role", session.RoleAdmin, "role claim")
	dept := fs.String("department", "", "department id claim")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := fakeapi.Mint(cfg.Fake.JWTSecret, *userID, *name, *email, *role, *dept, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
