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

// Package stats aggregates observed references per declaration.
//
// A [Table] is written concurrently by one collector per file. Different declarations are
// updated in parallel; updates to the same declaration are serialized by a lock on that
// declaration's bucket only.
package stats

import (
	"go/token"
	"maps"
	"slices"
	"sync"

	"fillmore-labs.com/lockstat/internal/guard"
)

// Span is the source range of a reference.
type Span struct {
	Pos, End token.Pos
}

// Observation is a single reference to a candidate declaration.
type Observation struct {
	// Decl is the referenced declaration.
	Decl guard.Decl

	// Name is the display name of the declaration.
	Name string

	// Guards are the distinct locks held at the reference, innermost first.
	Guards []guard.Guard

	// Span is the location of the reference.
	Span Span
}

// GuardStats counts the references made while holding one lock.
type GuardStats struct {
	guard.Guard

	Count     int
	Locations []Span
}

// VariableStats is the aggregate of all references to one declaration.
type VariableStats struct {
	Decl guard.Decl
	Name string

	// Total is the number of references, each counted once regardless of the number of locks held.
	Total int

	// Guards holds per-lock statistics. A reference made while holding several locks is
	// counted for each of them.
	Guards map[guard.Key]*GuardStats

	// Unguarded are the locations of references made without holding any lock.
	Unguarded []Span
}

func (v *VariableStats) add(o Observation) {
	v.Total++

	if len(o.Guards) == 0 {
		v.Unguarded = append(v.Unguarded, o.Span)

		return
	}

	if v.Guards == nil {
		v.Guards = make(map[guard.Key]*GuardStats)
	}

	for _, g := range o.Guards {
		gs, ok := v.Guards[g.Key]
		if !ok {
			gs = &GuardStats{Guard: g}
			v.Guards[g.Key] = gs
		}

		gs.Count++
		gs.Locations = append(gs.Locations, o.Span)
	}
}

func (v *VariableStats) clone() *VariableStats {
	c := *v
	c.Unguarded = slices.Clone(v.Unguarded)
	c.Guards = make(map[guard.Key]*GuardStats, len(v.Guards))

	for k, gs := range v.Guards {
		g := *gs
		g.Locations = slices.Clone(gs.Locations)
		c.Guards[k] = &g
	}

	return &c
}

// bucket is the per-declaration unit of mutual exclusion.
type bucket struct {
	mu    sync.Mutex
	stats VariableStats
	seen  map[Span]struct{}
}

// add records o unless a reference at the same location was already recorded. Files shared by
// several package variants are visited once per variant.
func (b *bucket) add(o Observation) {
	if _, ok := b.seen[o.Span]; ok {
		return
	}

	if b.seen == nil {
		b.seen = make(map[Span]struct{})
	}

	b.seen[o.Span] = struct{}{}
	b.stats.add(o)
}

// Table maps declarations to their statistics.
//
// The zero value is an empty table ready to use. A Table must not be copied after first use.
type Table struct {
	buckets sync.Map // guard.Decl -> *bucket
}

// Record adds an observation to the statistics of its declaration. Repeated observations of
// the same location are counted once.
func (t *Table) Record(o Observation) {
	b := t.bucket(o.Decl, o.Name)

	b.mu.Lock()
	b.add(o)
	b.mu.Unlock()
}

// bucket returns the bucket for a declaration, creating it on first use.
// Concurrent creators converge on the same bucket.
func (t *Table) bucket(d guard.Decl, name string) *bucket {
	if b, ok := t.buckets.Load(d); ok {
		return b.(*bucket) //nolint:forcetypeassert
	}

	b, _ := t.buckets.LoadOrStore(d, &bucket{stats: VariableStats{Decl: d, Name: name}})

	return b.(*bucket) //nolint:forcetypeassert
}

// Snapshot returns a copy of all statistics, ordered by declaration.
func (t *Table) Snapshot() []*VariableStats {
	index := make(map[guard.Decl]*VariableStats)

	t.buckets.Range(func(key, value any) bool {
		b := value.(*bucket) //nolint:forcetypeassert

		b.mu.Lock()
		index[key.(guard.Decl)] = b.stats.clone() //nolint:forcetypeassert
		b.mu.Unlock()

		return true
	})

	decls := slices.SortedFunc(maps.Keys(index), guard.Decl.Compare)

	vars := make([]*VariableStats, 0, len(decls))
	for _, d := range decls {
		vars = append(vars, index[d])
	}

	return vars
}
