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

package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/lockstat/internal/cli"
	"fillmore-labs.com/lockstat/internal/report"
)

const module = "testdata/mod"

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer

	code = Execute(t.Context(), append([]string{"-C", module}, args...), &out, &errOut)

	return code, out.String(), errOut.String()
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lockstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     int
		contains string
	}{
		{
			name:     "Text",
			args:     []string{"./..."},
			want:     ExitFindings,
			contains: "store/store.go:",
		},
		{
			name:     "DefaultPattern",
			want:     ExitFindings,
			contains: "'Store.data' accessed without holding 'Store.mu'",
		},
		{
			name: "AboveThreshold",
			args: []string{"--threshold", "80", "./..."},
			want: ExitOK,
		},
		{
			name:     "Stats",
			args:     []string{"--stats", "./store"},
			want:     ExitFindings,
			contains: "Store.mu 3 (75%)",
		},
		{
			name: "InvalidThreshold",
			args: []string{"--threshold", "0"},
			want: ExitError,
		},
		{
			name: "InvalidFormat",
			args: []string{"--format", "xml"},
			want: ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := execute(t, tt.args...)
			assert.Equal(t, tt.want, code, "stderr: %s", stderr)

			if tt.contains != "" {
				assert.Contains(t, stdout, tt.contains)
			}
		})
	}
}

func TestExecuteJSON(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := execute(t, "--format", "json", "--stats", "./...")
	require.Equal(t, ExitFindings, code, "stderr: %s", stderr)

	var entries []report.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))

	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "store/store.go", e.File)
	assert.Equal(t, "missing-guard", e.Category)
	assert.Equal(t, "Store.data", e.Field)
	assert.Equal(t, []string{"Store.mu"}, e.Dominant)
	assert.Equal(t, 75, e.Coverage)
	assert.NotEmpty(t, e.Fingerprint)

	assert.Contains(t, stderr, "Store.data", "statistics go to stderr for machine-readable formats")
}

func TestExecuteTests(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := execute(t, "--tests", "--format", "json", "./...")
	require.Equal(t, ExitFindings, code, "stderr: %s", stderr)

	var entries []report.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))

	require.Len(t, entries, 1, "test variants are analyzed once")
	assert.Equal(t, 75, entries[0].Coverage)
	assert.Contains(t, entries[0].Message, "held in 3 of 4 accesses")
}

func TestExecuteConfig(t *testing.T) {
	t.Parallel()

	strict := writeConfig(t, "threshold: 80\nformat: json\n")

	code, stdout, stderr := execute(t, "--config", strict, "./...")
	require.Equal(t, ExitOK, code, "stderr: %s", stderr)
	assert.JSONEq(t, "[]", stdout)

	// Flags override the configuration file
	code, _, stderr = execute(t, "--config", strict, "--threshold", "70", "./...")
	assert.Equal(t, ExitFindings, code, "stderr: %s", stderr)

	invalid := writeConfig(t, "thresold: 80\n")

	code, _, stderr = execute(t, "--config", invalid)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "thresold")
}

func TestFindConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	_, ok := FindConfig(nested)
	assert.False(t, ok)

	want := filepath.Join(root, ".lockstat.yaml")
	require.NoError(t, os.WriteFile(want, []byte("globals: true\n"), 0o600))

	got, ok := FindConfig(nested)
	require.True(t, ok)
	assert.Equal(t, want, got)

	cfg, err := LoadConfig(got)
	require.NoError(t, err)
	require.NotNil(t, cfg.Globals)
	assert.True(t, *cfg.Globals)
	assert.Nil(t, cfg.Threshold)
}

func TestLoadConfigEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}
