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

package stats_test

import (
	"go/token"
	"go/types"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/lockstat/internal/guard"
	. "fillmore-labs.com/lockstat/internal/stats"
)

func decl(fset *token.FileSet, f *token.File, name string, line int) guard.Decl {
	v := types.NewVar(f.LineStart(line), nil, name, types.Typ[types.Int])

	return guard.DeclOf(fset, v)
}

func fixture() (*token.FileSet, *token.File) {
	fset := token.NewFileSet()
	f := fset.AddFile("a.go", -1, 1000)

	lines := make([]int, 0, 100)
	for i := range 100 {
		lines = append(lines, i*10)
	}

	f.SetLines(lines)

	return fset, f
}

func TestRecord(t *testing.T) {
	t.Parallel()

	fset, f := fixture()

	data := decl(fset, f, "data", 2)
	mu := guard.Guard{Key: guard.Resolved(decl(fset, f, "mu", 1)), Name: "T.mu"}
	rw := guard.Guard{Key: guard.Resolved(decl(fset, f, "rw", 3)), Name: "T.rw"}

	var table Table

	table.Record(Observation{Decl: data, Name: "T.data", Guards: []guard.Guard{mu}, Span: Span{Pos: 100}})
	table.Record(Observation{Decl: data, Name: "T.data", Guards: []guard.Guard{rw, mu}, Span: Span{Pos: 200}})
	table.Record(Observation{Decl: data, Name: "T.data", Span: Span{Pos: 300}})

	vars := table.Snapshot()
	require.Len(t, vars, 1)

	v := vars[0]
	assert.Equal(t, "T.data", v.Name)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, []Span{{Pos: 300}}, v.Unguarded)

	require.Contains(t, v.Guards, mu.Key)
	assert.Equal(t, 2, v.Guards[mu.Key].Count)
	assert.Equal(t, []Span{{Pos: 100}, {Pos: 200}}, v.Guards[mu.Key].Locations)

	require.Contains(t, v.Guards, rw.Key)
	assert.Equal(t, 1, v.Guards[rw.Key].Count)
	assert.Equal(t, "T.rw", v.Guards[rw.Key].Name)
}

func TestSnapshotIsolated(t *testing.T) {
	t.Parallel()

	fset, f := fixture()

	data := decl(fset, f, "data", 2)
	mu := guard.Guard{Key: guard.Resolved(decl(fset, f, "mu", 1)), Name: "T.mu"}

	var table Table

	table.Record(Observation{Decl: data, Name: "T.data", Guards: []guard.Guard{mu}, Span: Span{Pos: 100}})

	before := table.Snapshot()

	table.Record(Observation{Decl: data, Name: "T.data", Guards: []guard.Guard{mu}, Span: Span{Pos: 200}})

	assert.Equal(t, 1, before[0].Total)
	assert.Equal(t, 1, before[0].Guards[mu.Key].Count)
	assert.Equal(t, 2, table.Snapshot()[0].Total)
}

func TestRecordRepeatedLocation(t *testing.T) {
	t.Parallel()

	fset, f := fixture()

	data := decl(fset, f, "data", 2)
	mu := guard.Guard{Key: guard.Resolved(decl(fset, f, "mu", 1)), Name: "T.mu"}

	var table Table

	// The same file seen through a package and its test variant
	for range 2 {
		table.Record(Observation{Decl: data, Name: "T.data", Guards: []guard.Guard{mu}, Span: Span{Pos: 100, End: 104}})
		table.Record(Observation{Decl: data, Name: "T.data", Span: Span{Pos: 200, End: 204}})
	}

	vars := table.Snapshot()
	require.Len(t, vars, 1)

	v := vars[0]
	assert.Equal(t, 2, v.Total)
	assert.Len(t, v.Unguarded, 1)
	assert.Equal(t, 1, v.Guards[mu.Key].Count)
}

func TestSnapshotOrder(t *testing.T) {
	t.Parallel()

	fset, f := fixture()

	var table Table

	for _, line := range []int{9, 3, 7, 1} {
		table.Record(Observation{Decl: decl(fset, f, "v", line), Name: "v"})
	}

	vars := table.Snapshot()
	require.Len(t, vars, 4)

	for i, want := range []int{1, 3, 7, 9} {
		assert.Equal(t, want, vars[i].Decl.Position().Line)
	}
}

func TestConcurrentRecord(t *testing.T) {
	t.Parallel()

	const (
		workers = 8
		records = 500
	)

	fset, f := fixture()

	a, b := decl(fset, f, "a", 1), decl(fset, f, "b", 2)
	mu := guard.Guard{Key: guard.Resolved(decl(fset, f, "mu", 3)), Name: "mu"}

	var (
		table Table
		wg    sync.WaitGroup
	)

	for w := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range records {
				d := a
				if (w+i)%2 == 0 {
					d = b
				}

				span := Span{Pos: token.Pos(w*records + i + 1)}
				table.Record(Observation{Decl: d, Name: d.Name(), Guards: []guard.Guard{mu}, Span: span})
			}
		}()
	}

	wg.Wait()

	vars := table.Snapshot()
	require.Len(t, vars, 2)

	var total int
	for _, v := range vars {
		assert.Equal(t, v.Total, v.Guards[mu.Key].Count)
		total += v.Total
	}

	assert.Equal(t, workers*records, total)
}
