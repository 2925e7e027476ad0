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
package analyzer_test

import (
	"log/slog"
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	. "fillmore-labs.com/lockstat/analyzer"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	tests := []struct {
		name    string
		dir     string
		options Option
	}{
		{
			name: "Default",
			dir:  "./a",
		},
		{
			name: "TryLock",
			dir:  "./trylock",
		},
		{
			name:    "NoTryLock",
			dir:     "./trylockoff",
			options: WithTryLock(false),
		},
		{
			name:    "Globals",
			dir:     "./globals",
			options: WithGlobals(true),
		},
		{
			name:    "Threshold",
			dir:     "./threshold",
			options: WithThreshold(60),
		},
		{
			name:    "Generated",
			dir:     "./generated",
			options: Options{WithGenerated(true), nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New(tt.options)
			analysistest.Run(t, testdata, a, tt.dir)
		})
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	a := New(WithThreshold(50), WithGlobals(true))

	tests := []struct {
		flag string
		want string
	}{
		{"threshold", "50"},
		{"globals", "true"},
		{"generated", "false"},
		{"trylock", "true"},
	}

	for _, tt := range tests {
		f := a.Flags.Lookup(tt.flag)
		if f == nil {
			t.Errorf("Flag %q not registered", tt.flag)

			continue
		}

		if got := f.Value.String(); got != tt.want {
			t.Errorf("Flag %q = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

func TestOptionsLogValue(t *testing.T) {
	t.Parallel()

	opts := Options{WithThreshold(80), Options{WithTryLock(false)}, nil}

	got := opts.LogValue().Resolve()
	if got.Kind() != slog.KindGroup {
		t.Fatalf("Expected group, got %v", got.Kind())
	}

	attrs := got.Group()
	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}

	if attrs[0].Key != "threshold" || attrs[0].Value.Int64() != 80 {
		t.Errorf("Unexpected first attribute %v", attrs[0])
	}

	if attrs[1].Key != "trylock" || attrs[1].Value.Bool() {
		t.Errorf("Unexpected second attribute %v", attrs[1])
	}
}
