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
package astutil

import (
	"go/ast"
	"go/token"
)

// Files indexes the files of one or more packages by their [token.File].
type Files struct {
	fset  *token.FileSet
	files map[*token.File]CurrentFile
}

// NewFiles creates an index of files.
func NewFiles(fset *token.FileSet, files ...*ast.File) Files {
	idx := Files{fset: fset, files: make(map[*token.File]CurrentFile, len(files))}
	idx.Add(files...)

	return idx
}

// Fset returns the file set of the indexed files.
func (f Files) Fset() *token.FileSet {
	return f.fset
}

// Add indexes additional files.
func (f Files) Add(files ...*ast.File) {
	for _, file := range files {
		if c := NewCurrentFile(f.fset, file); c.Valid() {
			f.files[c.handle] = c
		}
	}
}

// Lookup returns the indexed file containing pos.
func (f Files) Lookup(pos token.Pos) (CurrentFile, bool) {
	handle := f.fset.File(pos)
	if handle == nil {
		return CurrentFile{}, false
	}

	c, ok := f.files[handle]

	return c, ok
}

// Suppressed reports whether pos is on a line carrying a //nolint:lockstat comment.
func (f Files) Suppressed(pos token.Pos) bool {
	c, ok := f.Lookup(pos)

	return ok && c.NoLintComment(pos)
}
