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

// Package load loads and type-checks the packages of a whole program.
package load

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ErrPackageErrors is returned when some packages could not be loaded or type-checked.
var ErrPackageErrors = errors.New("packages contain errors")

// mode loads syntax and type information of the requested packages only. Dependencies are
// type-checked from export data. NeedForTest identifies test variants.
const mode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule |
	packages.NeedForTest

// Config configures the loader.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the current directory.
	Dir string

	// Tests includes test files.
	Tests bool

	// Env overrides the environment of the build system, when not nil.
	Env []string
}

// Packages loads the packages matching patterns into a single file set.
//
// Packages that failed to load are logged and omitted, and the returned error wraps
// [ErrPackageErrors]. The remaining packages are still returned.
func Packages(ctx context.Context, cfg Config, patterns ...string) (*token.FileSet, []*packages.Package, error) {
	defer trace.StartRegion(ctx, "Load").End()

	fset := token.NewFileSet()

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     cfg.Dir,
		Env:     cfg.Env,
		Fset:    fset,
		Tests:   cfg.Tests,
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("can't load packages: %w", err)
	}

	pkgs = selectVariants(pkgs)

	var (
		valid  = pkgs[:0]
		failed int
	)

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			for _, e := range pkg.Errors {
				slog.WarnContext(ctx, "Package error", slog.String("package", pkg.ID), slog.String("error", e.Error()))
			}

			failed++
		}

		if pkg.Types == nil || pkg.TypesInfo == nil || pkg.IllTyped {
			continue
		}

		slog.DebugContext(ctx, "Loaded package", slog.String("package", pkg.ID), slog.Int("files", len(pkg.Syntax)))

		valid = append(valid, pkg)
	}

	if failed > 0 {
		return fset, valid, fmt.Errorf("%w: %d of %d packages", ErrPackageErrors, failed, len(pkgs))
	}

	return fset, valid, nil
}

// selectVariants drops packages that are superseded by their test variant, so every file is
// analyzed once. Synthesized test main packages are dropped as well.
func selectVariants(pkgs []*packages.Package) []*packages.Package {
	tested := make(map[string]bool)

	for _, pkg := range pkgs {
		if pkg.ForTest != "" && pkg.ForTest == pkg.PkgPath {
			tested[pkg.PkgPath] = true
		}
	}

	selected := make([]*packages.Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		switch {
		case pkg.Name == "main" && strings.HasSuffix(pkg.ID, ".test"):
			continue // synthesized test main

		case pkg.ForTest == "" && tested[pkg.PkgPath]:
			continue // superseded by "p [p.test]"
		}

		selected = append(selected, pkg)
	}

	return selected
}
