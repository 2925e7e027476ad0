// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the lockstat command, which aggregates field accesses over all
// packages of a program.
package cli

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/astutil"
	"fillmore-labs.com/lockstat/internal/config"
	"fillmore-labs.com/lockstat/internal/engine"
	"fillmore-labs.com/lockstat/internal/load"
	"fillmore-labs.com/lockstat/internal/report"
	"fillmore-labs.com/lockstat/internal/run"
	"fillmore-labs.com/lockstat/internal/score"
)

// ErrFindings is returned when findings were reported.
var ErrFindings = errors.New("findings reported")

// Exit codes of the command.
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitError    = 2
)

const (
	long = `lockstat infers which lock protects a struct field from how the field is used
across all given packages, and reports the accesses that deviate.

A lock held for at least the threshold percentage of all accesses to a field is the
field's dominant lock. Accesses holding no lock or different locks are reported.

Settings are read from .lockstat.yaml in the working directory or one of its parents,
unless --config is given. Flags override file settings.`

	example = `  lockstat ./...
  lockstat --threshold 80 --format sarif ./... > lockstat.sarif
  lockstat --stats ./internal/...`
)

// settings are the command line options.
type settings struct {
	threshold int
	generated bool
	globals   bool
	tryLock   bool
	tests     bool
	workers   int
	format    report.Format
	stats     bool
	config    string
	dir       string
	verbose   bool
}

// NewCommand creates the lockstat root command.
func NewCommand() *cobra.Command {
	s := settings{
		threshold: score.DefaultThreshold,
		tryLock:   config.DefaultBehavior().Enabled(config.TryLock),
		format:    report.FormatText,
	}

	cmd := &cobra.Command{
		Use:           "lockstat [flags] [packages]",
		Short:         "Report field accesses that deviate from their usual locking",
		Long:          long,
		Example:       example,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          s.run,
	}

	f := cmd.Flags()
	f.IntVar(&s.threshold, "threshold", s.threshold, "minimum percentage of accesses holding a lock to make it dominant")
	f.BoolVar(&s.generated, "generated", s.generated, "check generated files")
	f.BoolVar(&s.globals, "globals", s.globals, "check package-level variables")
	f.BoolVar(&s.tryLock, "trylock", s.tryLock, "treat a successful TryLock as acquiring the lock")
	f.BoolVar(&s.tests, "tests", s.tests, "include test files")
	f.IntVar(&s.workers, "workers", s.workers, "number of files analyzed concurrently (0: GOMAXPROCS)")
	f.Var(&s.format, "format", "output format: text, json or sarif")
	f.BoolVar(&s.stats, "stats", s.stats, "print per-field lock statistics")
	f.StringVar(&s.config, "config", s.config, "configuration file (default: search .lockstat.yaml)")
	f.StringVarP(&s.dir, "dir", "C", s.dir, "change to `directory` before loading packages")
	f.BoolVarP(&s.verbose, "verbose", "v", s.verbose, "enable debug logging")

	return cmd
}

// Execute runs the command with args and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	code := exitCode(err)
	if code == ExitError {
		_, _ = fmt.Fprintf(stderr, "lockstat: %v\n", err)
	}

	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK

	case errors.Is(err, ErrFindings) && !errors.Is(err, load.ErrPackageErrors):
		return ExitFindings

	default:
		return ExitError
	}
}

func (s *settings) run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, task := trace.NewTask(cmd.Context(), "LockStatCommand")
	defer task.End()

	if err := s.applyConfig(ctx, cmd.Flags()); err != nil {
		return err
	}

	opts := s.options()
	if err := opts.Validate(); err != nil {
		return err
	}

	logger.DebugContext(ctx, "Starting analysis", slog.Any("options", opts))

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	fset, pkgs, loadErr := load.Packages(ctx, load.Config{Dir: s.dir, Tests: s.tests}, patterns...)
	if fset == nil {
		return loadErr
	}

	files := astutil.NewFiles(fset)

	var units []engine.Unit
	for _, pkg := range pkgs {
		in := inspector.New(pkg.Syntax)
		units = append(units, opts.Units(files, pkg.TypesInfo, in, func(file *ast.File) {
			logger.WarnContext(ctx, "File without position information",
				slog.String("package", pkg.ID), slog.String("file", file.Name.Name))
		})...)
	}

	result, err := engine.Run(ctx, opts.Threshold, units, opts.Workers)
	if err != nil {
		return err
	}

	findings := slices.DeleteFunc(result.Findings, func(f score.Finding) bool { return files.Suppressed(f.Span.Pos) })

	base, err := s.baseDir()
	if err != nil {
		return err
	}

	entries, err := report.Entries(fset, base, findings)
	if err != nil {
		return err
	}

	if s.stats {
		// Keep machine-readable output parsable
		w := cmd.OutOrStdout()
		if s.format != report.FormatText {
			w = cmd.ErrOrStderr()
		}

		report.WriteStats(w, result.Variables)
	}

	if err := report.Write(cmd.OutOrStdout(), s.format, entries); err != nil {
		return fmt.Errorf("can't write report: %w", err)
	}

	logger.DebugContext(ctx, "Analysis finished",
		slog.Int("packages", len(pkgs)),
		slog.Int("files", len(units)),
		slog.Int("declarations", len(result.Variables)),
		slog.Int("findings", len(entries)))

	var findingsErr error
	if len(entries) > 0 {
		findingsErr = fmt.Errorf("%w: %d", ErrFindings, len(entries))
	}

	return errors.Join(loadErr, findingsErr)
}

// applyConfig applies the configuration file to all settings not given on the command line.
func (s *settings) applyConfig(ctx context.Context, flags *pflag.FlagSet) error {
	path := s.config
	if path == "" {
		start := s.dir
		if start == "" {
			start = "."
		}

		found, ok := FindConfig(start)
		if !ok {
			return nil
		}

		path = found
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "Using configuration file", slog.String("path", path))

	setValue(flags, "threshold", &s.threshold, cfg.Threshold)
	setValue(flags, "generated", &s.generated, cfg.Generated)
	setValue(flags, "globals", &s.globals, cfg.Globals)
	setValue(flags, "trylock", &s.tryLock, cfg.TryLock)
	setValue(flags, "tests", &s.tests, cfg.Tests)
	setValue(flags, "workers", &s.workers, cfg.Workers)

	if cfg.Format != nil && !flags.Changed("format") {
		if err := s.format.Set(*cfg.Format); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	return nil
}

// setValue overrides target with a configured value, unless the flag was given explicitly.
func setValue[T any](flags *pflag.FlagSet, name string, target, value *T) {
	if value != nil && !flags.Changed(name) {
		*target = *value
	}
}

// options converts the settings into analysis options.
func (s *settings) options() *run.Options {
	opts := run.DefaultOptions()

	opts.Threshold = s.threshold
	opts.Workers = s.workers
	opts.Behavior.Set(config.IncludeGenerated, s.generated)
	opts.Behavior.Set(config.IncludeGlobals, s.globals)
	opts.Behavior.Set(config.TryLock, s.tryLock)

	return opts
}

// baseDir returns the directory file names are reported relative to.
func (s *settings) baseDir() (string, error) {
	if s.dir != "" {
		return filepath.Abs(s.dir)
	}

	return os.Getwd()
}
