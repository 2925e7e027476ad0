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
	"go/types"
)

// Op classifies locking method calls.
type Op uint8

const (
	// OpNone is not a locking call.
	OpNone Op = iota

	// OpAcquire is a call to Lock or RLock.
	OpAcquire

	// OpRelease is a call to Unlock or RUnlock.
	OpRelease

	// OpTryAcquire is a call to TryLock or TryRLock.
	OpTryAcquire
)

// lockOp classifies call as a locking method call.
//
// Any type qualifies, as long as the method has the shape of its [sync.Mutex] counterpart:
// Lock, RLock, Unlock and RUnlock take no arguments and return nothing, TryLock and TryRLock
// take no arguments and return a bool.
func lockOp(info *types.Info, call *ast.CallExpr) (Op, *ast.SelectorExpr, *types.Selection) {
	if call == nil || len(call.Args) != 0 {
		return OpNone, nil, nil
	}

	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return OpNone, nil, nil
	}

	selection, ok := info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return OpNone, nil, nil
	}

	fn, ok := selection.Obj().(*types.Func)
	if !ok {
		return OpNone, nil, nil
	}

	sig := fn.Signature()
	if sig.Params().Len() != 0 {
		return OpNone, nil, nil
	}

	results := sig.Results()

	var op Op

	switch fn.Name() {
	case "Lock", "RLock":
		if results.Len() == 0 {
			op = OpAcquire
		}

	case "Unlock", "RUnlock":
		if results.Len() == 0 {
			op = OpRelease
		}

	case "TryLock", "TryRLock":
		if results.Len() == 1 && isBool(results.At(0).Type()) {
			op = OpTryAcquire
		}
	}

	if op == OpNone {
		return OpNone, nil, nil
	}

	return op, sel, selection
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Kind() == types.Bool
}
