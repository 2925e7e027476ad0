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

package usage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/lockstat/internal/config"
	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/stats"
	"fillmore-labs.com/lockstat/internal/testsource"
	. "fillmore-labs.com/lockstat/internal/usage"
)

type recorder struct {
	mu  sync.Mutex
	obs []stats.Observation
}

func (r *recorder) Record(o stats.Observation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.obs = append(r.obs, o)
}

func TestCollect(t *testing.T) {
	t.Parallel()

	src := testsource.Load(t, `
type Counter struct {
	mu    Mutex
	n     int
	label string
}

func (c *Counter) Inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	_ = c.label
}

func New() *Counter {
	return &Counter{label: "x"}
}
`)

	r := guard.NewResolver(src.Fset, src.Info, config.DefaultBehavior())

	var rec recorder

	n := Stage{Resolver: r}.Collect(t.Context(), src.Root, &rec)

	require.Equal(t, 2, n)
	require.Len(t, rec.obs, 2)

	inc := rec.obs[0]
	assert.Equal(t, "Counter.n", inc.Name)
	require.Len(t, inc.Guards, 1)
	assert.Equal(t, "Counter.mu", inc.Guards[0].Name)
	assert.Equal(t, len("c.n"), int(inc.Span.End-inc.Span.Pos), "span covers the selector")

	label := rec.obs[1]
	assert.Equal(t, "Counter.label", label.Name)
	assert.Empty(t, label.Guards)
}

func TestCollectGlobals(t *testing.T) {
	t.Parallel()

	const source = `
var (
	mu    Mutex
	count int
)

func Inc() {
	mu.Lock()
	count++
	mu.Unlock()
}
`

	tests := []struct {
		name    string
		globals bool
		want    int
	}{
		{"Excluded", false, 0},
		{"Included", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := testsource.Load(t, source)

			behavior := config.DefaultBehavior()
			behavior.Set(config.IncludeGlobals, tt.globals)

			var rec recorder

			n := Stage{Resolver: guard.NewResolver(src.Fset, src.Info, behavior)}.Collect(t.Context(), src.Root, &rec)
			assert.Equal(t, tt.want, n)

			for _, o := range rec.obs {
				assert.Equal(t, "test.count", o.Name)
				require.Len(t, o.Guards, 1)
				assert.Equal(t, "test.mu", o.Guards[0].Name)
			}
		})
	}
}
