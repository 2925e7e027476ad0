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

package guard

import (
	"cmp"
	"go/token"
	"go/types"
)

// Decl identifies a field or variable declaration.
//
// A declaration is identified by the file position of its declaring identifier, not by its name.
// Positions survive separate type checking of packages against a shared [token.FileSet] and
// objects read from export data, where the same declaration is represented by different
// [types.Object] values. Offsets are left out, since export data only preserves lines and columns.
type Decl struct {
	name         string
	file         string
	line, column int
	obj          types.Object // only set for objects without position
}

// DeclOf returns the declaration identity of obj.
//
// Fields and methods of instantiated generic types are mapped to their generic origin.
func DeclOf(fset *token.FileSet, obj types.Object) Decl {
	if v, ok := obj.(*types.Var); ok {
		obj = v.Origin()
	}

	if pos := obj.Pos(); pos.IsValid() {
		if p := fset.Position(pos); p.IsValid() {
			return Decl{name: obj.Name(), file: p.Filename, line: p.Line, column: p.Column}
		}
	}

	return Decl{name: obj.Name(), obj: obj}
}

// Name returns the declared name.
func (d Decl) Name() string { return d.name }

// Valid reports whether d identifies a declaration.
func (d Decl) Valid() bool { return d.name != "" }

// Position returns the declaration's position; it is invalid for declarations without position.
func (d Decl) Position() token.Position {
	return token.Position{Filename: d.file, Line: d.line, Column: d.column}
}

// Compare orders declarations by position, then by name.
func (d Decl) Compare(o Decl) int {
	return cmp.Or(
		cmp.Compare(d.file, o.file),
		cmp.Compare(d.line, o.line),
		cmp.Compare(d.column, o.column),
		cmp.Compare(d.name, o.name),
	)
}
