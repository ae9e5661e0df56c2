package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/guard"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitUsage         = 2
	ExitLoginRequired = 3
)

// errLoginRequired is returned by protected commands when no session exists.
var errLoginRequired = errors.New("not logged in: run `docanalyzer login` first")

// usageError marks flag and argument problems.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// fieldErrors carries per-field input problems found before any backend call.
type fieldErrors map[string]string

func (f fieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return strings.Join(parts, "\n")
}

// NewRootCmd creates the root cobra command for the docanalyzer CLI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "docanalyzer",
		Short: "Upload contracts and read their analyses",
		Long: "docanalyzer talks to the document analysis service: log in, upload " +
			"documents and read the summary, key information and risk assessment of each.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&app.Config.APIURL, "api-url", app.Config.APIURL, "document service base URL (or DOCANALYZER_API_URL)")
	flags.StringVar(&app.Config.StateDB, "state-db", app.Config.StateDB, "session state file (or DOCANALYZER_STATE_DB)")
	flags.DurationVar(&app.Config.Timeout, "timeout", app.Config.Timeout, "per-request timeout, 0 disables (or DOCANALYZER_TIMEOUT)")

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newDocumentsCmd(app),
		newDevSeedCmd(app),
	)
	return root
}

// Execute runs the command line in args and reports failures on app.Err.
// It returns the process exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := app.Close(); closeErr != nil {
		app.Logger.Warn("close state file failed", "error", closeErr)
	}
	if err == nil {
		return ExitOK
	}
	return app.report(err)
}

func (a *App) report(err error) int {
	var fields fieldErrors
	var usage usageError
	switch {
	case errors.Is(err, errLoginRequired):
		_, _ = fmt.Fprintln(a.Err, errLoginRequired.Error())
		return ExitLoginRequired
	case errors.As(err, &fields):
		_, _ = fmt.Fprintln(a.Err, fields.Error())
		return ExitUsage
	case errors.As(err, &usage):
		_, _ = fmt.Fprintf(a.Err, "Error: %v\nRun `docanalyzer --help` for usage.\n", usage.err)
		return ExitUsage
	}

	a.Logger.Debug("command failed", "error", err)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		_, _ = fmt.Fprintf(a.Err, "Error: %s\n", apperrors.UserMessage(err))
		return ExitError
	}
	// Local failures (state file, flags) keep their own text.
	_, _ = fmt.Fprintf(a.Err, "Error: %v\n", err)
	return ExitError
}

// requireLogin guards a protected command. Without a session it remembers
// the command line for after login and refuses to run.
func requireLogin(app *App, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		decision := guard.Decide(cmd.CommandPath(), app.session.State())
		if !decision.Allow {
			app.rememberResume(cmd.Context(), commandLine(cmd, args))
			return errLoginRequired
		}
		return run(cmd, args)
	}
}

// commandLine reconstructs the invocation from the command path, its
// arguments and the local flags that were set explicitly. Global flags are
// left out.
func commandLine(cmd *cobra.Command, args []string) string {
	parts := []string{cmd.CommandPath()}
	parts = append(parts, args...)
	inherited := cmd.InheritedFlags()
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if inherited.Lookup(f.Name) != nil {
			return
		}
		parts = append(parts, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
	})
	return strings.Join(parts, " ")
}
