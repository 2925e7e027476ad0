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
// Package run drives the analysis of type-checked packages.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"runtime"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lockstat/internal/astutil"
	"fillmore-labs.com/lockstat/internal/config"
	"fillmore-labs.com/lockstat/internal/engine"
	"fillmore-labs.com/lockstat/internal/guard"
	"fillmore-labs.com/lockstat/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the lockstat analyzer's pipeline on a single package.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("lockstat: %w", err)
	}

	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("lockstat: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "LockStat")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	files := astutil.NewFiles(p.Fset)

	units := r.Units(files, p.TypesInfo, in, func(file *ast.File) {
		astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)
	})

	// Stage 1 and 2: collect all references of this package, then score
	result, err := engine.Run(ctx, r.Threshold, units, r.workers())
	if err != nil {
		return nil, fmt.Errorf("lockstat: %w", err)
	}

	// Stage 3: Generate diagnostics
	report.ProcessDiagnostics(ctx, p, files, result.Findings)

	return nil, nil
}

// Units selects the files to analyze, adds them to the files index and returns them as engine
// units. Generated files are skipped unless enabled, and so are files with a //nolint:lockstat
// comment on the package clause. invalid is called for files without position information.
func (r *Options) Units(files astutil.Files, info *types.Info, in *inspector.Inspector, invalid func(*ast.File)) []engine.Unit {
	fset := files.Fset()
	resolver := guard.NewResolver(fset, info, r.Behavior)

	var units []engine.Unit

	// Loop over all files
	for f := range in.Root().Children() {
		file, ok := f.Node().(*ast.File)
		if !ok {
			continue
		}

		currentFile := astutil.NewCurrentFile(fset, file)
		if !currentFile.Valid() {
			if invalid != nil {
				invalid(file)
			}

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if file.Doc != nil && astutil.CommentHasNoLint(file.Doc.List[len(file.Doc.List)-1]) {
			continue
		}

		files.Add(file)
		units = append(units, engine.Unit{Resolver: resolver, File: f})
	}

	return units
}

func (r *Options) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}

	return runtime.GOMAXPROCS(0)
}
