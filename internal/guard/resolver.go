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

// Package guard resolves references to their declarations and determines the locks held at
// each reference.
package guard

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/config"
)

// Resolver answers identity and guard questions for the files of one type-checked package.
//
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	fset    *token.FileSet
	info    *types.Info
	globals bool
	tryLock bool
}

// NewResolver creates a [Resolver] for a package's type information.
func NewResolver(fset *token.FileSet, info *types.Info, behavior config.Behavior) Resolver {
	return Resolver{
		fset:    fset,
		info:    info,
		globals: behavior.Enabled(config.IncludeGlobals),
		tryLock: behavior.Enabled(config.TryLock),
	}
}

// Candidate is a reference to a shared variable.
type Candidate struct {
	// Decl is the referenced declaration.
	Decl Decl

	// Name is the display name of the declaration, like "Cache.entries".
	Name string

	// GuardTarget is set when the reference is part of the guard expression of a locking call,
	// like mu in c.mu.Lock().
	GuardTarget bool
}

// Classify determines whether the identifier at c refers to a candidate declaration.
//
// Struct fields are candidates, package-level variables only when enabled.
// Keys of composite literals are not references.
func (r Resolver) Classify(c inspector.Cursor) (Candidate, bool) {
	id, ok := c.Node().(*ast.Ident)
	if !ok {
		return Candidate{}, false
	}

	v, ok := r.info.Uses[id].(*types.Var)
	if !ok {
		return Candidate{}, false
	}

	var name string

	switch {
	case v.IsField():
		if kind, _ := c.ParentEdge(); kind == edge.KeyValueExpr_Key {
			return Candidate{}, false // T{f: ...}
		}

		name = r.fieldName(c, v)

	case r.globals && isPackageLevel(v):
		name = varName(v)

	default:
		return Candidate{}, false
	}

	return Candidate{
		Decl:        DeclOf(r.fset, v),
		Name:        name,
		GuardTarget: r.isGuardTarget(c),
	}, true
}

// fieldName returns the display name of the field v referenced at c.
func (r Resolver) fieldName(c inspector.Cursor, v *types.Var) string {
	if kind, _ := c.ParentEdge(); kind == edge.SelectorExpr_Sel {
		sel, _ := c.Parent().Node().(*ast.SelectorExpr)
		if selection, ok := r.info.Selections[sel]; ok {
			if owner, _ := walk(selection.Recv(), selection.Index()); owner != nil {
				return memberName(owner, v.Name())
			}
		}
	}

	return v.Name()
}

// isGuardTarget reports whether the identifier at c is part of the receiver expression of a
// locking call.
func (r Resolver) isGuardTarget(c inspector.Cursor) bool {
	for cur := c; ; cur = cur.Parent() {
		switch kind, _ := cur.ParentEdge(); kind {
		case edge.SelectorExpr_X:
			sel := cur.Parent()
			if k, _ := sel.ParentEdge(); k != edge.CallExpr_Fun {
				continue
			}

			call, _ := sel.Parent().Node().(*ast.CallExpr)
			if op, _, _ := lockOp(r.info, call); op != OpNone {
				return true
			}

		case edge.SelectorExpr_Sel,
			edge.ParenExpr_X,
			edge.StarExpr_X,
			edge.UnaryExpr_X,
			edge.IndexExpr_X:

		default:
			return false
		}
	}
}

// lockCall returns the operation and the guard of a locking call.
func (r Resolver) lockCall(call *ast.CallExpr) (Op, Guard) {
	op, sel, selection := lockOp(r.info, call)
	if op == OpNone {
		return OpNone, Guard{}
	}

	// Method promoted from an embedded field: the embedded field is the lock
	if path := selection.Index(); len(path) > 1 {
		if owner, field := walk(selection.Recv(), path[:len(path)-1]); field != nil {
			return op, Guard{Key: Resolved(DeclOf(r.fset, field)), Name: memberName(owner, field.Name())}
		}
	}

	return op, r.guardOf(sel.X)
}

// guardOf resolves a guard expression, falling back to its textual form.
func (r Resolver) guardOf(x ast.Expr) Guard {
	if g, ok := r.resolveGuard(x); ok {
		return g
	}

	text := types.ExprString(x)

	return Guard{Key: Textual(text), Name: text}
}

func (r Resolver) resolveGuard(x ast.Expr) (Guard, bool) {
	switch e := ast.Unparen(x).(type) {
	case *ast.Ident:
		v, ok := r.info.Uses[e].(*types.Var)
		if !ok {
			break
		}

		return Guard{Key: Resolved(DeclOf(r.fset, v)), Name: varName(v)}, true

	case *ast.SelectorExpr:
		if selection, ok := r.info.Selections[e]; ok {
			if selection.Kind() != types.FieldVal {
				break
			}

			owner, field := walk(selection.Recv(), selection.Index())
			if field == nil {
				break
			}

			return Guard{Key: Resolved(DeclOf(r.fset, field)), Name: memberName(owner, field.Name())}, true
		}

		// Qualified identifier
		v, ok := r.info.Uses[e.Sel].(*types.Var)
		if !ok {
			break
		}

		return Guard{Key: Resolved(DeclOf(r.fset, v)), Name: varName(v)}, true

	case *ast.StarExpr:
		return r.resolveGuard(e.X)

	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return r.resolveGuard(e.X)
		}
	}

	return Guard{}, false
}
