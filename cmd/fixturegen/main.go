// Command fixturegen generates and schedules a tournament's fixtures from a
// YAML roster without a running server or database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

const (
	inputFlag    = "input"
	outputFlag   = "output"
	seedFlag     = "seed"
	logLevelFlag = "log-level"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "fixturegen",
		Usage:   "generate a scheduled fixture list from a tournament roster",
		Version: "v1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     inputFlag,
				Aliases:  []string{"i"},
				Usage:    "roster YAML file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "output YAML file, - for stdout",
				Value:   "-",
			},
			&cli.Uint64Flag{
				Name:  seedFlag,
				Usage: "random seed for group draws when the roster does not set one",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "debug, info, warn or error",
				Value: "info",
			},
		},
		Action: run,
	}
}

func run(cCtx *cli.Context) error {
	level, err := logging.ParseLevel(cCtx.String(logLevelFlag))
	if err != nil {
		return err
	}
	logger := logging.NewConsole(level)
	defer func() {
		_ = logger.Sync()
	}()

	in, err := os.Open(cCtx.String(inputFlag))
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	defer in.Close()

	r, err := decodeRoster(in)
	if err != nil {
		return err
	}

	seed := uint64(time.Now().UnixNano())
	if cCtx.IsSet(seedFlag) {
		seed = cCtx.Uint64(seedFlag)
	}

	p, err := buildPlan(cCtx.Context, r, seed, logger)
	if err != nil {
		return err
	}

	var out io.WriteCloser = nopWriteCloser{cCtx.App.Writer}
	if path := cCtx.String(outputFlag); path != "-" {
		out = newLazyFile(path)
	}
	if err := writePlan(out, p); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// lazyFile creates its file on first write, so a failed run leaves no
// truncated output behind.
type lazyFile struct {
	path string
	file *os.File
}

func newLazyFile(path string) *lazyFile {
	return &lazyFile{path: path}
}

func (f *lazyFile) Write(p []byte) (int, error) {
	if f.file == nil {
		file, err := os.Create(f.path)
		if err != nil {
			return 0, err
		}
		f.file = file
	}
	return f.file.Write(p)
}

func (f *lazyFile) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
