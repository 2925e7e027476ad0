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
package gclplugin

import lockstat "fillmore-labs.com/lockstat/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Threshold is the minimum percentage of accesses a lock must be held for to be dominant.
	Threshold *int `json:"threshold,omitzero"`
	// Generated enables analysis of generated files.
	Generated *bool `json:"generated,omitzero"`
	// Globals enables checks of package-level variables.
	Globals *bool `json:"globals,omitzero"`
	// TryLock treats a successful TryLock as acquiring the lock.
	TryLock *bool `json:"trylock,omitzero"`
}

// Options converts [Settings] into a list of [lockstat.Option] for the lockstat analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []lockstat.Option {
	var opts []lockstat.Option

	opts = appendOption(opts, s.Threshold, lockstat.WithThreshold)
	opts = appendOption(opts, s.Generated, lockstat.WithGenerated)
	opts = appendOption(opts, s.Globals, lockstat.WithGlobals)
	opts = appendOption(opts, s.TryLock, lockstat.WithTryLock)

	return opts
}

// appendOption appends a non-nil setting to a [lockstat.Option] list.
func appendOption[T any](opts []lockstat.Option, value *T, constructor func(T) lockstat.Option) []lockstat.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
