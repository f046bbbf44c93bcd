package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bamorim/bindcheck/internal/app"
)

var (
	version string
	commit  string
	date    string
)

func getVersion() string {
	if version == "" {
		return "dev"
	}
	if commit != "" && len(commit) >= 7 {
		return fmt.Sprintf("%s (%s)", version, commit[:7])
	}
	return version
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "bindcheck",
		Usage:     "Check that TCP sockets can be bound on local addresses",
		Version:   getVersion(),
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to config file (.json, .yaml)"},
			&cli.StringSliceFlag{Name: "address", Aliases: []string{"a"}, Usage: "Address to bind (repeatable, replaces the defaults)"},
			&cli.BoolFlag{Name: "keep-going", Aliases: []string{"k"}, Usage: "Check every address even after a failure"},
			&cli.BoolFlag{Name: "strict", Usage: "Exit with status 1 when any check fails"},
			&cli.BoolFlag{Name: "portable", Usage: "Bind through the net package instead of raw sockets"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Output format: text, json"},
			&cli.StringFlag{Name: "log-file", Usage: "Append bind events to this file"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug output"},
		},
		Action: func(c *cli.Context) error {
			format := strings.ToLower(c.String("format"))
			if format != "text" && format != "json" {
				return exitForError(app.NewCodeError(2, app.ErrUnknownFormat))
			}
			report, err := app.Check(c.Context, optionsFromContext(c))
			if err != nil && !errors.Is(err, app.ErrChecksFailed) {
				return exitForError(err)
			}
			if outErr := writeReport(c.App.Writer, format, report); outErr != nil {
				return exitForError(outErr)
			}
			return exitForError(err)
		},
	}
}

func optionsFromContext(c *cli.Context) app.Options {
	return app.Options{
		ConfigPath: c.String("config"),
		Addresses:  c.StringSlice("address"),
		KeepGoing:  c.Bool("keep-going"),
		Strict:     c.Bool("strict"),
		Portable:   c.Bool("portable"),
		Verbose:    c.Bool("verbose"),
		LogFile:    c.String("log-file"),
	}
}

func writeReport(out io.Writer, format string, report app.Report) error {
	switch format {
	case "json":
		payload, err := json.MarshalIndent(report.Entries(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	default:
		for _, line := range report.Lines() {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	}
}

func exitForError(err error) error {
	if err == nil {
		return nil
	}
	var codeErr app.CodeError
	if errors.As(err, &codeErr) {
		return cli.Exit(codeErr.Error(), codeErr.Code)
	}
	return cli.Exit(err.Error(), 2)
}
