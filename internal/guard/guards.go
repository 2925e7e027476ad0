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
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// Guards returns the locks held at the node c, innermost first.
//
// Walking outward from c, every enclosing statement list is scanned for locking calls preceding
// the statement containing c: Lock and RLock acquire, Unlock and RUnlock release, and deferred
// releases keep the lock until the end of the list. The body of an if statement conditioned on
// TryLock is guarded, as are the statements following an early exit on a failed TryLock.
//
// Inner statement lists run after the statements preceding them in outer lists, so a lock
// acquired or released in an inner list overrides what the outer lists say about it.
//
// The walk ends at the enclosing function declaration or at a function literal started with a go
// statement, since a new goroutine does not hold its creator's locks.
func (r Resolver) Guards(c inspector.Cursor) []Guard {
	var (
		guards  []Guard
		decided = make(map[Key]struct{})
	)

	for cur := c; ; cur = cur.Parent() {
		kind, idx := cur.ParentEdge()

		switch kind {
		case edge.BlockStmt_List:
			block, _ := cur.Parent().Node().(*ast.BlockStmt)
			guards = r.appendHeld(guards, decided, block.List[:idx])

		case edge.CaseClause_Body:
			clause, _ := cur.Parent().Node().(*ast.CaseClause)
			guards = r.appendHeld(guards, decided, clause.Body[:idx])

		case edge.CommClause_Body:
			clause, _ := cur.Parent().Node().(*ast.CommClause)
			guards = r.appendHeld(guards, decided, clause.Body[:idx])

		case edge.IfStmt_Body:
			if !r.tryLock {
				break
			}

			stmt, _ := cur.Parent().Node().(*ast.IfStmt)
			if g, ok := r.tryLocked(stmt.Cond, false); ok {
				if _, ok := decided[g.Key]; !ok {
					guards = appendGuard(guards, g)
					decided[g.Key] = struct{}{}
				}
			}

		case edge.FuncLit_Body:
			if startedByGo(cur.Parent()) {
				return guards
			}

		case edge.FuncDecl_Body, edge.Invalid:
			return guards
		}

		if _, ok := cur.Node().(*ast.File); ok {
			return guards
		}
	}
}

// appendHeld appends the locks still held after executing stmts, most recently acquired first.
// Locks in decided were settled by a later statement list and are left alone; every lock
// acquired or released in stmts is added to decided.
func (r Resolver) appendHeld(guards []Guard, decided map[Key]struct{}, stmts []ast.Stmt) []Guard {
	var held, released []Guard

	acquire := func(g Guard) {
		held = appendGuard(held, g)
		released = removeGuard(released, g.Key)
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ExprStmt:
			call, ok := ast.Unparen(s.X).(*ast.CallExpr)
			if !ok {
				continue
			}

			switch op, g := r.lockCall(call); op {
			case OpAcquire:
				acquire(g)

			case OpRelease:
				held = removeGuard(held, g.Key)
				released = appendGuard(released, g)
			}

		case *ast.IfStmt:
			// if !mu.TryLock() { return }
			if !r.tryLock || s.Else != nil || !exits(s.Body) {
				continue
			}

			if g, ok := r.tryLocked(s.Cond, true); ok {
				acquire(g)
			}
		}
	}

	for i := len(held) - 1; i >= 0; i-- {
		if _, ok := decided[held[i].Key]; !ok {
			guards = appendGuard(guards, held[i])
		}
	}

	for _, g := range held {
		decided[g.Key] = struct{}{}
	}

	for _, g := range released {
		decided[g.Key] = struct{}{}
	}

	return guards
}

// tryLocked matches a condition of the form x.TryLock(), or !x.TryLock() when negated.
func (r Resolver) tryLocked(cond ast.Expr, negated bool) (Guard, bool) {
	expr := ast.Unparen(cond)

	if negated {
		not, ok := expr.(*ast.UnaryExpr)
		if !ok || not.Op != token.NOT {
			return Guard{}, false
		}

		expr = ast.Unparen(not.X)
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return Guard{}, false
	}

	if op, g := r.lockCall(call); op == OpTryAcquire {
		return g, true
	}

	return Guard{}, false
}

// exits reports whether a block unconditionally leaves the enclosing statement list.
func exits(body *ast.BlockStmt) bool {
	if len(body.List) == 0 {
		return false
	}

	switch body.List[len(body.List)-1].(type) {
	case *ast.ReturnStmt, *ast.BranchStmt:
		return true

	default:
		return false
	}
}

// startedByGo reports whether the function literal at c is the function of a go statement.
func startedByGo(c inspector.Cursor) bool {
	if kind, _ := c.ParentEdge(); kind != edge.CallExpr_Fun {
		return false
	}

	kind, _ := c.Parent().ParentEdge()

	return kind == edge.GoStmt_Call
}
