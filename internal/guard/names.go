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

import "go/types"

// walk follows the field indices of path, starting at t.
// It returns the type declaring the last field of the path together with that field.
func walk(t types.Type, path []int) (owner types.Type, field *types.Var) {
	for _, i := range path {
		st, ok := deref(t).Underlying().(*types.Struct)
		if !ok || i < 0 || i >= st.NumFields() {
			return nil, nil
		}

		owner, field = t, st.Field(i)
		t = field.Type()
	}

	return owner, field
}

func deref(t types.Type) types.Type {
	if p, ok := t.Underlying().(*types.Pointer); ok {
		return p.Elem()
	}

	return t
}

// typeName returns the name of a (pointer to a) named type, or "" for unnamed types.
func typeName(t types.Type) string {
	if t == nil {
		return ""
	}

	if n, ok := types.Unalias(deref(t)).(*types.Named); ok {
		return n.Origin().Obj().Name()
	}

	return ""
}

// memberName qualifies name with the name of its owner type, when there is one.
func memberName(owner types.Type, name string) string {
	if n := typeName(owner); n != "" {
		return n + "." + name
	}

	return name
}

// varName returns the display name of a variable that is not a field.
func varName(v *types.Var) string {
	if isPackageLevel(v) {
		return v.Pkg().Name() + "." + v.Name()
	}

	return v.Name()
}

func isPackageLevel(v *types.Var) bool {
	pkg := v.Pkg()

	return pkg != nil && v.Parent() == pkg.Scope()
}
