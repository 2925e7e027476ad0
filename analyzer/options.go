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
package analyzer

import (
	"log/slog"

	"fillmore-labs.com/lockstat/internal/config"
	"fillmore-labs.com/lockstat/internal/run"
)

// Option configures specific behavior of a [New] lockstat analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithThreshold is an [Option] to configure the minimum percentage of accesses a lock must be
// held for to be considered the dominant lock of a field.
func WithThreshold(threshold int) Option { return thresholdOption{threshold: threshold} }

type thresholdOption struct{ threshold int }

func (o thresholdOption) apply(r *run.Options) {
	r.Threshold = o.threshold
}

func (o thresholdOption) LogAttr() slog.Attr {
	return slog.Int("threshold", o.threshold)
}

// WithGenerated is an [Option] to configure analysis of generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithGlobals is an [Option] to configure whether package-level variables are checked in
// addition to struct fields.
func WithGlobals(globals bool) Option { return globalsOption{globals: globals} }

type globalsOption struct{ globals bool }

func (o globalsOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGlobals, o.globals)
}

func (o globalsOption) LogAttr() slog.Attr {
	return slog.Bool("globals", o.globals)
}

// WithTryLock is an [Option] to configure whether a successful TryLock acquires a lock.
func WithTryLock(tryLock bool) Option { return tryLockOption{tryLock: tryLock} }

type tryLockOption struct{ tryLock bool }

func (o tryLockOption) apply(r *run.Options) {
	r.Behavior.Set(config.TryLock, o.tryLock)
}

func (o tryLockOption) LogAttr() slog.Attr {
	return slog.Bool("trylock", o.tryLock)
}
