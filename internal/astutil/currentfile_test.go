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

package astutil_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	. "fillmore-labs.com/lockstat/internal/astutil"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		comment string
		want    bool
	}{
		{"//nolint:lockstat", true},
		{"// nolint:lockstat", true},
		{"//nolint:errcheck,LockStat", true},
		{"//nolint:all", true},
		{"//nolint:errcheck", false},
		{"// lockstat", false},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			t.Parallel()

			if got := CommentHasNoLint(&ast.Comment{Text: tt.comment}); got != tt.want {
				t.Errorf("CommentHasNoLint(%q) = %v, want %v", tt.comment, got, tt.want)
			}
		})
	}
}

func TestSuppressed(t *testing.T) {
	t.Parallel()

	const src = `package p

var a, b int

func f() {
	a = 1 //nolint:lockstat
	b = 2
}
`

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	files := NewFiles(fset, f)

	tf := fset.File(f.FileStart)

	at := func(s string) token.Pos { return tf.Pos(strings.Index(src, s)) }

	if !files.Suppressed(at("a = 1")) {
		t.Error("Expected access on nolint line to be suppressed")
	}

	if files.Suppressed(at("b = 2")) {
		t.Error("Expected access on plain line not to be suppressed")
	}

	if c, ok := files.Lookup(at("b = 2")); !ok || c.Generated() {
		t.Error("Expected file to be indexed and not generated")
	}
}
