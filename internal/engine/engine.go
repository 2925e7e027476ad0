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

// Package engine drives the two phases of the analysis: collecting references from any number
// of files, then scoring all declarations once.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/trace"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/score"
	"fillmore-labs.com/lockstat/internal/stats"
	"fillmore-labs.com/lockstat/internal/usage"
)

// ErrFinalized is returned when an [Engine] is used after [Engine.Finalize].
var ErrFinalized = errors.New("engine already finalized")

// Unit is a single type-checked file.
type Unit struct {
	Resolver guard.Resolver
	File     inspector.Cursor
}

// Result is the outcome of an analysis.
type Result struct {
	// Findings are the deviating accesses, ordered by position.
	Findings []score.Finding

	// Variables are the statistics of all observed declarations.
	Variables []*stats.VariableStats
}

// Engine accumulates references of many units. Collect may be called concurrently.
type Engine struct {
	table     stats.Table
	threshold int
	finalized atomic.Bool
	refs      atomic.Int64
}

// New creates an [Engine] reporting accesses against locks held for at least threshold percent
// of the accesses to a declaration.
func New(threshold int) *Engine {
	return &Engine{threshold: threshold}
}

// Collect records all references in u.
func (e *Engine) Collect(ctx context.Context, u Unit) error {
	if e.finalized.Load() {
		return ErrFinalized
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	n := usage.Stage{Resolver: u.Resolver}.Collect(ctx, u.File, &e.table)
	e.refs.Add(int64(n))

	return nil
}

// Finalize scores all collected declarations. It must be called after all calls to
// [Engine.Collect] have returned, and only once.
func (e *Engine) Finalize(ctx context.Context) (Result, error) {
	if e.finalized.Swap(true) {
		return Result{}, ErrFinalized
	}

	vars := e.table.Snapshot()

	slog.DebugContext(ctx, "Scoring declarations",
		slog.Int("declarations", len(vars)),
		slog.Int64("references", e.refs.Load()),
		slog.Int("threshold", e.threshold))

	return Result{
		Findings:  score.Score(ctx, vars, e.threshold),
		Variables: vars,
	}, nil
}

// Run collects all units using at most workers goroutines, then scores the result.
// A non-positive workers count means no limit.
func Run(ctx context.Context, threshold int, units []Unit, workers int) (Result, error) {
	ctx, task := trace.NewTask(ctx, "Engine")
	defer task.End()

	e := New(threshold)

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, u := range units {
		g.Go(func() error { return e.Collect(gctx, u) })
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return e.Finalize(ctx)
}
