// Command scaffold-cli generates project skeletons from scaffold templates.
//
//	scaffold-cli new --scaffold starter --output ./shop --var project=shop --var package=shop
//	scaffold-cli render development.ini_tmpl --var project=shop
//	scaffold-cli vars --scaffold starter
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:  "scaffold-cli",
		Usage: "generate project skeletons from scaffold templates",
		Commands: []*cli.Command{
			newCommand,
			renderCommand,
			varsCommand,
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
