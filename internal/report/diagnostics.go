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
package report

import (
	"context"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/lockstat/internal/astutil"
	"fillmore-labs.com/lockstat/internal/score"
)

// Diagnostic converts a finding into an analyzer diagnostic.
func Diagnostic(f score.Finding) analysis.Diagnostic {
	d := analysis.Diagnostic{
		Pos:      f.Span.Pos,
		End:      f.Span.End,
		Category: f.Category.String(),
		Message:  Message(f),
	}

	if f.Example.Pos.IsValid() {
		d.Related = []analysis.RelatedInformation{{
			Pos:     f.Example.Pos,
			End:     f.Example.End,
			Message: "Accessed holding " + concatNames(guardNames(f.Dominant)) + " here",
		}}
	}

	return d
}

// ProcessDiagnostics emits diagnostics for all findings not suppressed by a //nolint comment.
func ProcessDiagnostics(ctx context.Context, p *analysis.Pass, files astutil.Files, findings []score.Finding) {
	defer trace.StartRegion(ctx, "Report").End()

	for _, f := range findings {
		if files.Suppressed(f.Span.Pos) {
			continue
		}

		p.Report(Diagnostic(f))
	}
}
