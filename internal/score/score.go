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

// Package score decides which accesses deviate from the locking discipline of their declaration.
//
// A lock that is held for at least a threshold percentage of all accesses to a declaration is
// considered its dominant lock. Accesses made without holding the dominant locks are reported.
package score

import (
	"cmp"
	"context"
	"go/token"
	"maps"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/stats"
)

// DefaultThreshold is the default minimum coverage, in percent, of a dominant lock.
const DefaultThreshold = 70

// Finding is an access that deviates from the dominant locking discipline.
type Finding struct {
	Category Category

	// Span is the location of the deviating access.
	Span stats.Span

	// Decl is the accessed declaration and Field its display name.
	Decl  guard.Decl
	Field string

	// Dominant are the locks held for most accesses, ordered by count.
	Dominant []guard.Guard

	// Conflicting are the locks held at this access instead. Empty for [MissingGuard].
	Conflicting []guard.Guard

	// DominantCount is the number of accesses holding all dominant locks.
	DominantCount int

	// Total is the number of accesses.
	Total int

	// Unguarded is the number of accesses holding no lock.
	Unguarded int

	// Coverage is DominantCount as a percentage of Total, rounded down.
	Coverage int

	// Example is the first access holding all dominant locks.
	Example stats.Span
}

// Score evaluates the statistics of all declarations against threshold and returns the
// findings ordered by position.
func Score(ctx context.Context, vars []*stats.VariableStats, threshold int) []Finding {
	defer trace.StartRegion(ctx, "Score").End()

	var findings []Finding

	for _, v := range vars {
		findings = append(findings, scoreVariable(v, threshold)...)
	}

	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Span.Pos, b.Span.Pos),
			a.Decl.Compare(b.Decl),
		)
	})

	return findings
}

// coverage returns count as a percentage of total, rounded down.
func coverage(count, total int) int {
	if total == 0 {
		return 0
	}

	return count * 100 / total
}

func scoreVariable(v *stats.VariableStats, threshold int) []Finding {
	if v.Total == 0 {
		return nil
	}

	dominant := dominantGuards(v, threshold)
	if len(dominant) == 0 {
		return nil // no discernible intent
	}

	held := heldAt(v)

	locations := slices.SortedFunc(maps.Keys(held), func(a, b stats.Span) int {
		return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.End, b.End))
	})

	var (
		dominantCount int
		example       stats.Span
		deviating     []stats.Span
	)

	for _, s := range locations {
		if holdsAll(held[s], dominant) {
			if dominantCount == 0 {
				example = s
			}

			dominantCount++

			continue
		}

		deviating = append(deviating, s)
	}

	findings := make([]Finding, 0, len(deviating))

	for _, s := range deviating {
		f := Finding{
			Category:      MissingGuard,
			Span:          s,
			Decl:          v.Decl,
			Field:         v.Name,
			Dominant:      dominant,
			DominantCount: dominantCount,
			Total:         v.Total,
			Unguarded:     len(v.Unguarded),
			Coverage:      coverage(dominantCount, v.Total),
			Example:       example,
		}

		if h := held[s]; len(h) > 0 {
			f.Category = MismatchedGuard
			f.Conflicting = conflicting(h, dominant)
		}

		findings = append(findings, f)
	}

	return findings
}

// dominantGuards returns the locks reaching threshold, ordered by count descending, then by
// earliest observation, then by name.
//
// Besides the most used lock, a lock is only dominant when it was held together with it at
// some access. Low thresholds would otherwise make alternative locks dominant together.
func dominantGuards(v *stats.VariableStats, threshold int) []guard.Guard {
	var candidates []*stats.GuardStats

	for _, gs := range v.Guards {
		if coverage(gs.Count, v.Total) >= threshold {
			candidates = append(candidates, gs)
		}
	}

	slices.SortFunc(candidates, func(a, b *stats.GuardStats) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(firstPos(a), firstPos(b)),
			cmp.Compare(a.Name, b.Name),
			a.Key.Compare(b.Key),
		)
	})

	if len(candidates) == 0 {
		return nil
	}

	maxGuard := candidates[0]

	nested := make(map[stats.Span]struct{}, len(maxGuard.Locations))
	for _, s := range maxGuard.Locations {
		nested[s] = struct{}{}
	}

	dominant := []guard.Guard{maxGuard.Guard}

	for _, gs := range candidates[1:] {
		if slices.ContainsFunc(gs.Locations, func(s stats.Span) bool { _, ok := nested[s]; return ok }) {
			dominant = append(dominant, gs.Guard)
		}
	}

	return dominant
}

func firstPos(gs *stats.GuardStats) token.Pos {
	var first token.Pos

	for _, s := range gs.Locations {
		if first == token.NoPos || s.Pos < first {
			first = s.Pos
		}
	}

	return first
}

// heldAt maps every access location to the locks held there, in order of decreasing count.
func heldAt(v *stats.VariableStats) map[stats.Span][]guard.Guard {
	held := make(map[stats.Span][]guard.Guard, v.Total)

	for _, s := range v.Unguarded {
		held[s] = nil
	}

	guards := slices.SortedFunc(maps.Values(v.Guards), func(a, b *stats.GuardStats) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), a.Key.Compare(b.Key))
	})

	for _, gs := range guards {
		for _, s := range gs.Locations {
			held[s] = append(held[s], gs.Guard)
		}
	}

	return held
}

func contains(guards []guard.Guard, k guard.Key) bool {
	return slices.ContainsFunc(guards, func(g guard.Guard) bool { return g.Key == k })
}

func holdsAll(held, dominant []guard.Guard) bool {
	for _, g := range dominant {
		if !contains(held, g.Key) {
			return false
		}
	}

	return true
}

// conflicting returns the held locks that are not dominant, or all held locks when they are
// a strict subset of the dominant ones.
func conflicting(held, dominant []guard.Guard) []guard.Guard {
	var others []guard.Guard

	for _, g := range held {
		if !contains(dominant, g.Key) {
			others = append(others, g)
		}
	}

	if len(others) == 0 {
		return held
	}

	return others
}
