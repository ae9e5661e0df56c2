// Command docanalyzer is the terminal client of the document-analysis service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/docanalyzer-ui/internal/bootstrap"
	"github.com/target/docanalyzer-ui/internal/cli"
)

func main() {
	os.Exit(run()) //nolint:forbidigo // Main entrypoint exits with the command's status.
}

func run() int {
	cfg, err := bootstrap.LoadCLIConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	logger := bootstrap.InitLoggerTo(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, cli.NewApp(cfg, logger), os.Args[1:])
}
