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
	"encoding/binary"
	"fmt"

	"github.com/minio/highwayhash"

	"fillmore-labs.com/lockstat/internal/score"
)

// fingerprintKey is the fixed HighwayHash key, so fingerprints are stable across runs.
var fingerprintKey = []byte("lockstat-fingerprint-key-0123456")

// Fingerprint returns a stable identifier of a finding for baselining. It covers the category,
// the field, the locks involved and the file-relative position of the access.
func Fingerprint(f score.Finding, file string, line int) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", fmt.Errorf("can't create fingerprint hash: %w", err)
	}

	write := func(s string) {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(s))) //nolint:gosec
		_, _ = hash.Write(n[:])
		_, _ = hash.Write([]byte(s))
	}

	write(f.Category.String())
	write(f.Field)

	for _, g := range f.Dominant {
		write(g.Name)
	}

	write("/")

	for _, g := range f.Conflicting {
		write(g.Name)
	}

	write(file)
	write(fmt.Sprint(line))

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
