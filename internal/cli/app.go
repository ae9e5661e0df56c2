// Package cli implements the docanalyzer terminal client. It shares the
// session store, route guard, API gateway and analysis viewer with the web
// front end and keeps its state in a local SQLite file.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/target/docanalyzer-ui/config"
	"github.com/target/docanalyzer-ui/internal/adapters/sqlite"
	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/bootstrap"
	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/ports"
	"github.com/target/docanalyzer-ui/internal/session"
)

// resumeKey stores the protected command that was refused for lack of a session.
const resumeKey = "resume_command"

// cliScope is the selection tracker scope; the terminal has a single one.
const cliScope = "cli"

// App holds the terminal client's I/O and the services opened for one invocation.
type App struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Config config.CLIConfig
	Logger *slog.Logger

	// Backend overrides the gateway, for tests.
	Backend func(ctx context.Context, storage ports.Storage) (ports.ScopedBackend, error)

	storage *sqlite.Storage
	api     ports.ScopedBackend
	session *session.Store
	viewer  *analysis.Viewer
	reader  *bufio.Reader
}

// NewApp creates an App on the process's standard streams.
func NewApp(cfg config.CLIConfig, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Config: cfg, Logger: logger}
}

// open connects the state file, the backend client and the session store.
func (a *App) open(ctx context.Context) error {
	if a.storage != nil {
		return nil
	}
	a.Config.Sanitize()

	storage, err := sqlite.Open(ctx, a.Config.StateDB)
	if err != nil {
		return err
	}
	a.storage = storage

	newBackend := a.Backend
	if newBackend == nil {
		factory, err := bootstrap.NewBackendFactory(a.Config.Backend(), a.Logger, nil)
		if err != nil {
			return err
		}
		newBackend = factory.Scoped
	}
	if a.api, err = newBackend(ctx, storage); err != nil {
		return err
	}

	a.session = session.New(storage,
		session.WithLogger(a.Logger),
		session.WithObserver(a.announce),
	)
	a.session.Initialize(ctx)
	a.viewer = analysis.NewViewer(analysis.NewTracker(), a.Logger)
	return nil
}

// Close releases the state file.
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	err := a.storage.Close()
	a.storage = nil
	return err
}

// announce prints session transitions. After a login it also points at the
// command that was refused earlier.
func (a *App) announce(ctx context.Context, tr domainauth.Transition) {
	switch tr.To {
	case domainauth.StatusAuthenticated:
		a.printf("Logged in as %s.\n", tr.User.Username)
		if resume := a.takeResume(ctx); resume != "" {
			a.printf("Continue with: %s\n", resume)
		}
	case domainauth.StatusAnonymous:
		a.printf("Logged out.\n")
	}
}

func (a *App) rememberResume(ctx context.Context, command string) {
	if err := a.storage.Set(ctx, resumeKey, []byte(command)); err != nil {
		a.Logger.WarnContext(ctx, "remember requested command failed", "error", err)
	}
}

func (a *App) takeResume(ctx context.Context) string {
	raw, err := a.storage.Get(ctx, resumeKey)
	if err != nil || len(raw) == 0 {
		return ""
	}
	if err := a.storage.Delete(ctx, resumeKey); err != nil {
		a.Logger.WarnContext(ctx, "forget requested command failed", "error", err)
	}
	return string(raw)
}

func (a *App) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.Out, format, args...); err != nil {
		a.Logger.Debug("write output failed", "error", err)
	}
}

func (a *App) line() *bufio.Reader {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.In)
	}
	return a.reader
}

// prompt reads one line from In after writing label to Err.
func (a *App) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(a.Err, label)
	text, err := a.line().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(text, "\r\n"), nil
}

// promptSecret reads without echo when In is a terminal and falls back to a
// plain line read otherwise (pipes, tests).
func (a *App) promptSecret(label string) (string, error) {
	f, ok := a.In.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.prompt(label)
	}
	_, _ = fmt.Fprint(a.Err, label)
	b, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(a.Err)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
