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
package usage

import (
	"go/ast"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/stats"
)

// collector walks a file and forwards observations to a sink.
type collector struct {
	// Resolver is an embedded resolver for candidates and held locks.
	guard.Resolver

	sink  Sink
	count int
}

// inspectFile visits all identifiers in the file.
//
// Guard expressions of locking calls are not counted, so mu in c.mu.Lock() is not an access.
func (c *collector) inspectFile(file inspector.Cursor) {
	for i := range file.Preorder((*ast.Ident)(nil)) {
		if id, _ := i.Node().(*ast.Ident); id.Name == "_" {
			continue
		}

		cand, ok := c.Classify(i)
		if !ok || cand.GuardTarget {
			continue
		}

		c.sink.Record(stats.Observation{
			Decl:   cand.Decl,
			Name:   cand.Name,
			Guards: c.Guards(i),
			Span:   spanOf(i),
		})
		c.count++
	}
}

// spanOf returns the range of the whole selector for field selections and the identifier otherwise.
func spanOf(i inspector.Cursor) stats.Span {
	n := i.Node()
	if kind, _ := i.ParentEdge(); kind == edge.SelectorExpr_Sel {
		n = i.Parent().Node()
	}

	return stats.Span{Pos: n.Pos(), End: n.End()}
}
