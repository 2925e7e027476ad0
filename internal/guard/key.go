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
	"strings"
)

type keyKind uint8

const (
	resolvedKey keyKind = iota + 1
	textualKey
)

// Key identifies the object a guard expression locks.
//
// It is either the declaration the expression resolves to, or the canonical text of the
// expression when it can't be resolved. A textual key never equals a resolved key, even when both
// denote the same object at run time.
type Key struct {
	kind keyKind
	decl Decl
	text string
}

// Resolved returns the [Key] of a guard resolved to a declaration.
func Resolved(d Decl) Key { return Key{kind: resolvedKey, decl: d} }

// Textual returns the [Key] of an unresolved guard expression.
func Textual(expr string) Key { return Key{kind: textualKey, text: strings.TrimSpace(expr)} }

// IsResolved reports whether the key denotes a declaration.
func (k Key) IsResolved() bool { return k.kind == resolvedKey }

// Decl returns the declaration of a resolved key.
func (k Key) Decl() Decl { return k.decl }

// String returns a debugging representation of the key.
func (k Key) String() string {
	switch k.kind {
	case resolvedKey:
		return "decl:" + k.decl.Name()

	case textualKey:
		return "text:" + k.text

	default:
		return "<none>"
	}
}

// Compare orders keys by kind, declaration and text.
func (k Key) Compare(o Key) int {
	return cmp.Or(
		cmp.Compare(k.kind, o.kind),
		k.decl.Compare(o.decl),
		cmp.Compare(k.text, o.text),
	)
}

// Guard is a lock held at a reference, identified by [Key].
type Guard struct {
	Key Key

	// Name is the display name, like "Cache.mu".
	Name string
}

// appendGuard appends g unless a guard with the same key is already present.
func appendGuard(guards []Guard, g Guard) []Guard {
	for _, h := range guards {
		if h.Key == g.Key {
			return guards
		}
	}

	return append(guards, g)
}

// removeGuard removes the guard with key k.
func removeGuard(guards []Guard, k Key) []Guard {
	for i, h := range guards {
		if h.Key == k {
			return append(guards[:i], guards[i+1:]...)
		}
	}

	return guards
}
