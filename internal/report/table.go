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

package report

import (
	"fmt"
	"go/token"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"

	"fillmore-labs.com/lockstat/internal/stats"
)

// WriteStats renders per-field lock statistics as a table.
func WriteStats(w io.Writer, vars []*stats.VariableStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Declared", "Accesses", "Unguarded", "Locks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	var accesses int

	for _, v := range vars {
		pos := v.Decl.Position()

		table.Append([]string{
			v.Name,
			fmt.Sprintf("%s:%d", shortName(pos), pos.Line),
			fmt.Sprint(v.Total),
			fmt.Sprint(len(v.Unguarded)),
			lockSummary(v),
		})

		accesses += v.Total
	}

	table.SetFooter([]string{fmt.Sprintf("%d fields", len(vars)), "", fmt.Sprint(accesses), "", ""})

	table.Render()
}

// lockSummary lists the locks of a field with their share of accesses, most used first.
func lockSummary(v *stats.VariableStats) string {
	guards := slices.SortedFunc(maps.Values(v.Guards), func(a, b *stats.GuardStats) int {
		if c := b.Count - a.Count; c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	parts := make([]string, 0, len(guards))
	for _, g := range guards {
		parts = append(parts, fmt.Sprintf("%s %d (%d%%)", g.Name, g.Count, g.Count*100/v.Total))
	}

	return strings.Join(parts, ", ")
}

func shortName(pos token.Position) string {
	name := pos.Filename
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	return name
}
