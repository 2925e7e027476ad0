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

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configNames are the file names searched for a configuration file, in order.
var configNames = [...]string{".lockstat.yaml", ".lockstat.yml"}

// FileConfig is the content of a configuration file. Unset values keep their defaults.
type FileConfig struct {
	Threshold *int    `yaml:"threshold"`
	Generated *bool   `yaml:"generated"`
	Globals   *bool   `yaml:"globals"`
	TryLock   *bool   `yaml:"trylock"`
	Tests     *bool   `yaml:"tests"`
	Workers   *int    `yaml:"workers"`
	Format    *string `yaml:"format"`
}

// FindConfig searches dir and its parents for a configuration file.
func FindConfig(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// LoadConfig reads a configuration file. Unknown keys are an error.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("can't read config: %w", err)
	}

	var cfg FileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("can't parse config %s: %w", path, err)
	}

	return cfg, nil
}
