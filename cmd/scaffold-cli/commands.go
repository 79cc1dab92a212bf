package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	scaffold "github.com/goliatone/go-scaffold"
	"github.com/goliatone/go-scaffold/pkg/manifest"
	"github.com/goliatone/go-scaffold/pkg/orchestrator"
	"github.com/goliatone/go-scaffold/pkg/prompt"
	"github.com/goliatone/go-scaffold/pkg/render"
)

var newCommand = &cli.Command{
	Name:  "new",
	Usage: "generate a project from a scaffold",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "scaffold",
			Aliases: []string{"s"},
			Value:   scaffold.StarterName,
			Usage:   "embedded scaffold name or path to a scaffold directory",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "project destination directory",
		},
		&cli.StringSliceFlag{
			Name:    "var",
			Aliases: []string{"v"},
			Usage:   "set a scaffold variable as name=value (repeatable)",
		},
		&cli.StringFlag{
			Name:  "params",
			Usage: "YAML or JSON file with scaffold variables",
		},
		&cli.StringFlag{
			Name:  "renderer",
			Usage: "template engine override (see scaffold manifest for the default)",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite existing files",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "plan without writing anything",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "prompt for missing variables",
		},
		&cli.BoolFlag{
			Name:  "verify",
			Value: true,
			Usage: "re-parse rendered .ini files as a structural check",
		},
	},
	Action: runNew,
}

func runNew(ctx context.Context, cmd *cli.Command) error {
	src, err := resolveScaffold(cmd.String("scaffold"))
	if err != nil {
		return err
	}

	gen := scaffold.NewOrchestrator(
		orchestrator.WithPromptDriver(prompt.NewSurveyDriver()),
	)

	result, err := gen.Generate(ctx, scaffold.Request{
		Source:      src,
		SetPairs:    cmd.StringSlice("var"),
		ParamsFile:  cmd.String("params"),
		OutputDir:   cmd.String("output"),
		Renderer:    cmd.String("renderer"),
		DryRun:      cmd.Bool("dry-run"),
		Force:       cmd.Bool("force"),
		Interactive: cmd.Bool("interactive"),
		Verify:      cmd.Bool("verify"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		for _, path := range result.Plan.Files() {
			fmt.Println(path)
		}
		slog.Info("dry run complete", "scaffold", result.ScaffoldName, "files", len(result.Plan.Files()))
		return nil
	}

	slog.Info("project generated",
		"scaffold", result.ScaffoldName,
		"output", cmd.String("output"),
		"files", len(result.Created),
		"unchanged", len(result.Skipped))

	if result.Message != "" {
		fmt.Println(result.Message)
	}
	return nil
}

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "render a single template to stdout",
	ArgsUsage: "TEMPLATE (use - for stdin)",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "var",
			Aliases: []string{"v"},
			Usage:   "set a variable as name=value (repeatable)",
		},
		&cli.StringFlag{
			Name:  "params",
			Usage: "YAML or JSON file with variables",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (stdout if empty)",
		},
		&cli.StringFlag{
			Name:  "renderer",
			Value: render.PlaceholderName,
			Usage: "template engine to use",
		},
	},
	Action: runRender,
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("render: template argument is required")
	}

	name := path
	var content []byte
	var err error
	if path == "-" {
		name = "stdin"
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("render: read template: %w", err)
	}

	values, err := collectParams(cmd)
	if err != nil {
		return err
	}

	renderer, err := defaultRegistry().Get(cmd.String("renderer"))
	if err != nil {
		return err
	}

	out, err := renderer.Render(ctx, name, string(content), values)
	if err != nil {
		return err
	}

	if target := cmd.String("output"); target != "" {
		if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
			return fmt.Errorf("render: write %q: %w", target, err)
		}
		slog.Info("rendered template", "template", name, "output", target)
		return nil
	}
	fmt.Print(out)
	return nil
}

var varsCommand = &cli.Command{
	Name:  "vars",
	Usage: "list the variables a scaffold declares",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "scaffold",
			Aliases: []string{"s"},
			Value:   scaffold.StarterName,
			Usage:   "embedded scaffold name or path to a scaffold directory",
		},
	},
	Action: runVars,
}

func runVars(_ context.Context, cmd *cli.Command) error {
	fsys, label, err := scaffoldFS(cmd.String("scaffold"))
	if err != nil {
		return err
	}

	m, err := manifest.Load(fsys)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("%s declares no manifest; all placeholders must be supplied explicitly\n", label)
			return nil
		}
		return err
	}

	if m.Description != "" {
		fmt.Printf("%s - %s\n", m.Name, m.Description)
	} else {
		fmt.Println(m.Name)
	}
	if m.Engine != "" {
		registry := defaultRegistry()
		if !registry.Has(m.Engine) {
			fmt.Printf("warning: engine %q is not available here (available: %s)\n",
				m.Engine, strings.Join(registry.List(), ", "))
		}
	}
	for _, v := range m.Variables {
		line := "  " + v.Name
		if v.Required {
			line += " (required)"
		}
		if v.Default != "" {
			line += fmt.Sprintf(" [default: %s]", v.Default)
		}
		if v.Pattern != "" {
			line += fmt.Sprintf(" [pattern: %s]", v.Pattern)
		}
		if v.Description != "" {
			line += " - " + v.Description
		}
		fmt.Println(line)
	}
	return nil
}
