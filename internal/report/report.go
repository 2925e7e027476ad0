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
// Package report renders findings as analyzer diagnostics and as command output.
package report

import (
	"fmt"
	"strings"

	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/score"
)

// Message constructs the diagnostic message of a finding.
func Message(f score.Finding) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "'%s' accessed ", f.Field) // ignore error

	switch f.Category {
	case score.MissingGuard:
		fmt.Fprintf(&msg, "without holding %s", concatNames(guardNames(f.Dominant))) // ignore error

	case score.MismatchedGuard:
		format := "holding %s instead of %s"
		if subset(f.Conflicting, f.Dominant) {
			format = "holding only %s instead of %s"
		}

		fmt.Fprintf(&msg, format, concatNames(guardNames(f.Conflicting)), concatNames(guardNames(f.Dominant))) // ignore error
	}

	fmt.Fprintf(&msg, " (held in %d of %d accesses, %d%%", f.DominantCount, f.Total, f.Coverage) // ignore error

	if f.Unguarded > 0 {
		fmt.Fprintf(&msg, "; %d unguarded", f.Unguarded) // ignore error
	}

	msg.WriteByte(')') // ignore error

	return msg.String()
}

// guardNames returns the display names of guards.
func guardNames(guards []guard.Guard) []string {
	names := make([]string, 0, len(guards))
	for _, g := range guards {
		names = append(names, g.Name)
	}

	return names
}

// subset reports whether all guards in a are contained in b.
func subset(a, b []guard.Guard) bool {
outer:
	for _, g := range a {
		for _, h := range b {
			if g.Key == h.Key {
				continue outer
			}
		}

		return false
	}

	return true
}

// concatNames formats a list of names into a human-readable string (e.g., "'a', 'b' and 'c'").
func concatNames(names []string) string {
	var allNames strings.Builder

	for i, name := range names {
		if i > 0 {
			var separator string
			if i == len(names)-1 {
				separator = " and "
			} else {
				separator = ", "
			}

			allNames.WriteString(separator) // ignore error
		}

		allNames.WriteByte('\'')   // ignore error
		allNames.WriteString(name) // ignore error
		allNames.WriteByte('\'')   // ignore error
	}

	return allNames.String()
}
