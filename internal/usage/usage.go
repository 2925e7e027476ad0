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
// Package usage collects references to candidate declarations together with the locks
// held at each reference.
package usage

import (
	"context"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/stats"
)

// Sink receives observed references. Implementations must be safe for concurrent use.
type Sink interface {
	Record(o stats.Observation)
}

// Stage configures the collection of references in a single file.
type Stage struct {
	guard.Resolver
}

// Collect records every reference to a candidate declaration in file to sink and returns
// the number of references recorded.
func (s Stage) Collect(ctx context.Context, file inspector.Cursor, sink Sink) int {
	defer trace.StartRegion(ctx, "Usage").End()

	c := collector{Resolver: s.Resolver, sink: sink}
	c.inspectFile(file)

	return c.count
}
