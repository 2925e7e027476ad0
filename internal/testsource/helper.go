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

// Package testsource type-checks small source snippets for unit tests.
package testsource

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ast/inspector"
)

const testpkg = "test"

// Prelude declares lock types with the method sets of [sync.Mutex] and [sync.RWMutex], so
// snippets need no imports.
const Prelude = `
type Mutex struct{ state int32 }

func (m *Mutex) Lock()         {}
func (m *Mutex) Unlock()       {}
func (m *Mutex) TryLock() bool { return true }

type RWMutex struct{ w Mutex }

func (rw *RWMutex) Lock()          {}
func (rw *RWMutex) Unlock()        {}
func (rw *RWMutex) RLock()         {}
func (rw *RWMutex) RUnlock()       {}
func (rw *RWMutex) TryLock() bool  { return true }
func (rw *RWMutex) TryRLock() bool { return true }
`

// Source is a parsed and type-checked test package.
type Source struct {
	Fset  *token.FileSet
	Files []*ast.File
	Pkg   *types.Package
	Info  *types.Info

	// Root is the cursor of the first file, Cursors those of all files.
	Root    inspector.Cursor
	Cursors []inspector.Cursor
}

// Load parses and type-checks the given files as one package. Every file is prefixed by a
// package clause, the first one also by [Prelude].
func Load(tb testing.TB, srcs ...string) Source {
	tb.Helper()

	fset := token.NewFileSet()

	files := make([]*ast.File, 0, len(srcs))
	for i, src := range srcs {
		filename := fmt.Sprintf("test%d.go", i)

		text := "package " + testpkg + "\n"
		if i == 0 {
			text += Prelude
		}

		f, err := parser.ParseFile(fset, filename, text+src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			tb.Fatalf("Failed to parse source %q: %v", src, err)
		}

		files = append(files, f)
	}

	pkg, info := Check(tb, fset, files...)

	var cursors []inspector.Cursor
	for c := range inspector.New(files).Root().Children() {
		cursors = append(cursors, c)
	}

	if len(cursors) == 0 {
		tb.Fatal("Can't find file")
	}

	return Source{Fset: fset, Files: files, Pkg: pkg, Info: info, Root: cursors[0], Cursors: cursors}
}

// Check type-checks files as one package.
func Check(tb testing.TB, fset *token.FileSet, files ...*ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, files, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// Uses returns the cursors of all identifiers named name that refer to an object, in source order.
func (s Source) Uses(name string) []inspector.Cursor {
	var uses []inspector.Cursor

	for _, file := range s.Cursors {
		for c := range file.Preorder((*ast.Ident)(nil)) {
			id, _ := c.Node().(*ast.Ident)
			if id.Name != name {
				continue
			}

			if _, ok := s.Info.Uses[id]; ok {
				uses = append(uses, c)
			}
		}
	}

	return uses
}

// Use returns the n-th use of name, counting from zero.
func (s Source) Use(tb testing.TB, name string, n int) inspector.Cursor {
	tb.Helper()

	uses := s.Uses(name)
	if n >= len(uses) {
		tb.Fatalf("Can't find use %d of %q, found %d", n, name, len(uses))
	}

	return uses[n]
}
