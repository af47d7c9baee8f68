package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/TuPhung369/PasswordEpic/internal/app"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := newCLI(buildInfo(), vault.Unsupported(), newTerminalReader(os.Stdin, os.Stderr))
	err := c.root().ExecuteContext(ctx)
	if closeErr := c.closeApp(nil, nil); err == nil {
		err = closeErr
	}
	if err != nil {
		msg := app.UserMessage(err)
		if msg == app.MsgInternalError {
			msg = err.Error()
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		if c.verbose {
			fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
