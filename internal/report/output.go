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
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"io"
	"path/filepath"

	"fillmore-labs.com/lockstat/internal/score"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output format of the command.
type Format string

// Supported output formats.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// String implements [pflag.Value].
func (f *Format) String() string { return string(*f) }

// Set implements [pflag.Value].
func (f *Format) Set(s string) error {
	switch v := Format(s); v {
	case FormatText, FormatJSON, FormatSARIF:
		*f = v

		return nil

	default:
		return fmt.Errorf("%w: %q (want text, json or sarif)", ErrUnknownFormat, s)
	}
}

// Type implements [pflag.Value].
func (f *Format) Type() string { return "format" }

// Entry is a finding resolved to file positions.
type Entry struct {
	Category    string   `json:"category"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Field       string   `json:"field"`
	Message     string   `json:"message"`
	Dominant    []string `json:"dominant"`
	Conflicting []string `json:"conflicting,omitempty"`
	Coverage    int      `json:"coverage"`
	Fingerprint string   `json:"fingerprint"`
}

// Entries resolves findings to file positions. File names are made relative to base when possible.
func Entries(fset *token.FileSet, base string, findings []score.Finding) ([]Entry, error) {
	entries := make([]Entry, 0, len(findings))

	for _, f := range findings {
		start, end := fset.Position(f.Span.Pos), fset.Position(f.Span.End)

		file := start.Filename
		if base != "" {
			if rel, err := filepath.Rel(base, file); err == nil {
				file = filepath.ToSlash(rel)
			}
		}

		fp, err := Fingerprint(f, file, start.Line)
		if err != nil {
			return nil, err
		}

		e := Entry{
			Category:    f.Category.String(),
			File:        file,
			Line:        start.Line,
			Column:      start.Column,
			EndLine:     end.Line,
			EndColumn:   end.Column,
			Field:       f.Field,
			Message:     Message(f),
			Dominant:    guardNames(f.Dominant),
			Coverage:    f.Coverage,
			Fingerprint: fp,
		}

		if len(f.Conflicting) > 0 {
			e.Conflicting = guardNames(f.Conflicting)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// Write renders entries in the given format.
func Write(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case FormatText, "":
		return WriteText(w, entries)

	case FormatJSON:
		return WriteJSON(w, entries)

	case FormatSARIF:
		return WriteSARIF(w, entries)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteText renders one line per entry, like the go vet output.
func WriteText(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s]\n", e.File, e.Line, e.Column, e.Message, e.Category); err != nil {
			return err
		}
	}

	return nil
}

// WriteJSON renders entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(entries)
}
