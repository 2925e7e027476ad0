// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
package run

import (
	"errors"
	"fmt"
	"log/slog"

	"fillmore-labs.com/lockstat/internal/config"
	"fillmore-labs.com/lockstat/internal/score"
)

// ErrInvalidThreshold is returned for thresholds outside of 1..100.
var ErrInvalidThreshold = errors.New("threshold must be between 1 and 100")

// Options represent configuration options for the lockstat analyzer.
type Options struct {
	// Behavior holds behavioral options.
	Behavior config.Behavior

	// Threshold is the minimum percentage of accesses a lock must be held for to be considered dominant.
	Threshold int

	// Workers limits the number of files analyzed concurrently. Non-positive means GOMAXPROCS.
	Workers int
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior:  config.DefaultBehavior(),
		Threshold: score.DefaultThreshold,
	}
}

// Validate checks the options for consistency.
func (r *Options) Validate() error {
	if r.Threshold < 1 || r.Threshold > 100 {
		return fmt.Errorf("%w, got %d", ErrInvalidThreshold, r.Threshold)
	}

	return nil
}

// LogValue implements [slog.LogValuer].
func (r *Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("threshold", r.Threshold),
		slog.Bool("generated", r.Behavior.Enabled(config.IncludeGenerated)),
		slog.Bool("globals", r.Behavior.Enabled(config.IncludeGlobals)),
		slog.Bool("trylock", r.Behavior.Enabled(config.TryLock)),
		slog.Int("workers", r.Workers),
	)
}
