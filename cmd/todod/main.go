// todod is a terminal task manager with reminders.
//
// Usage:
//
//	todod                  run the terminal UI
//	todod serve            serve the task API over HTTP
//	todod mcp              expose the signed-in user's tasks as MCP tools on stdio
//	todod migrate up|down  apply or roll back the database schema
//	todod version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/client"
	"github.com/sandeepkv93/todod/internal/config"
	"github.com/sandeepkv93/todod/internal/httpapi"
	"github.com/sandeepkv93/todod/internal/logging"
	"github.com/sandeepkv93/todod/internal/mcptools"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/service"
	"github.com/sandeepkv93/todod/internal/storage"
	"github.com/sandeepkv93/todod/internal/update"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	cmd := "tui"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version", "--version", "-v":
		fmt.Printf("todod %s\n", version)
		return
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "todod: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "tui":
		err = runTUI(cfg)
	case "serve":
		err = runServe(cfg)
	case "mcp":
		err = runMCP(cfg)
	case "migrate":
		err = runMigrate(cfg, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "todod failed: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `todod %s

Usage:
  todod                  run the terminal UI
  todod serve            serve the task API over HTTP
  todod mcp              expose your tasks as MCP tools on stdio
  todod migrate up|down  apply or roll back the database schema
  todod version

Environment (also read from .env):
  TODOD_DATA_DIR, TODOD_DB_DRIVER, TODOD_DB_DSN, TODOD_HTTP_ADDR,
  TODOD_API_URL, TODOD_JWT_SECRET, TODOD_TOKEN_TTL_HOURS, TODOD_LOG_LEVEL,
  TODOD_LOG_FILE, TODOD_DESKTOP_NOTIFICATIONS, TODOD_SCHEDULER_BUFFER,
  TODOD_REMINDER_TIME
`, version)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openLocal opens the configured database and the account service on it.
func openLocal(cfg config.RuntimeConfig) (*storage.SQLRepository, *auth.Service, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	repo, err := storage.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	secret, err := cfg.Secret()
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return repo, auth.NewService(repo, auth.NewTokens(secret, cfg.TokenTTL)), nil
}

func localTasks(repo storage.Repository, cfg config.RuntimeConfig, userID string) *service.Tasks {
	t := service.NewTasks(repo, userID)
	t.ReminderClock = cfg.ReminderClock
	return t
}

func runTUI(cfg config.RuntimeConfig) error {
	log, closer, err := logging.NewFile(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	session := auth.NewSession(auth.NewSessionStore(cfg.DataDir))
	if err := session.Restore(); err != nil {
		log.WithError(err).Warn("ignoring unreadable session marker")
	}

	var (
		authn   update.Authenticator
		factory update.BackendFactory
	)
	if cfg.RemoteMode() {
		cl := client.New(cfg.APIURL, session.Token)
		authn = cl
		factory = func(model.User) backend.Backend { return cl }
		log.WithField("api_url", cfg.APIURL).Info("using remote task server")
	} else {
		repo, authSvc, err := openLocal(cfg)
		if err != nil {
			return err
		}
		defer repo.Close()
		if session.IsAuthenticated() {
			if _, err := authSvc.Authenticate(ctx, session.Token()); err != nil {
				log.WithError(err).Info("stored session rejected, signing out")
				_ = session.Clear()
			}
		}
		authn = authSvc
		factory = func(u model.User) backend.Backend { return localTasks(repo, cfg, u.ID) }
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start(ctx)
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Session:              session,
		Auth:                 authn,
		Backend:              factory,
		Scheduler:            engine,
		Notifier:             update.ExecDesktopNotifier{},
		DesktopNotifications: cfg.DesktopNotifications,
		Log:                  log,
		Now:                  time.Now,
		Location:             time.Local,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()
	if err := session.End(); err != nil {
		log.WithError(err).Warn("end session")
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}

func runServe(cfg config.RuntimeConfig) error {
	log := logging.New(cfg.LogLevel, os.Stderr)
	repo, authSvc, err := openLocal(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, cancel := signalContext()
	defer cancel()

	srv := httpapi.NewServer(repo, authSvc, log)
	srv.ReminderClock = cfg.ReminderClock
	log.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "driver": cfg.DBDriver}).Info("serving task api")
	return srv.ListenAndServe(ctx, cfg.HTTPAddr)
}

// runMCP serves the tools for whoever is signed in to the terminal UI.
// stdout carries the protocol so logs go to the log file.
func runMCP(cfg config.RuntimeConfig) error {
	log, closer, err := logging.NewFile(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return err
	}
	defer closer.Close()

	session := auth.NewSession(auth.NewSessionStore(cfg.DataDir))
	if err := session.Restore(); err != nil {
		return err
	}
	if err := session.Require(); err != nil {
		return fmt.Errorf("%w: sign in with the terminal UI first", err)
	}

	var b backend.Backend
	if cfg.RemoteMode() {
		b = client.New(cfg.APIURL, session.Token)
	} else {
		repo, authSvc, err := openLocal(cfg)
		if err != nil {
			return err
		}
		defer repo.Close()
		user, err := authSvc.Authenticate(context.Background(), session.Token())
		if err != nil {
			return err
		}
		b = localTasks(repo, cfg, user.ID)
	}

	log.WithField("user_id", session.User().ID).Info("serving mcp tools on stdio")
	s := mcptools.NewServer(version, b, time.Now)
	return server.ServeStdio(s)
}

func runMigrate(cfg config.RuntimeConfig, args []string) error {
	if len(args) != 1 || (args[0] != "up" && args[0] != "down") {
		return errors.New("usage: todod migrate up|down")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := storage.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if args[0] == "up" {
		err = storage.MigrateUp(db)
	} else {
		err = storage.MigrateDown(db)
	}
	if err != nil {
		return err
	}
	fmt.Printf("migrate %s: done (%s)\n", args[0], cfg.DBDriver)
	return nil
}
