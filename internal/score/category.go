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

package score

// Category distinguishes the kinds of findings.
type Category uint8

//go:generate go tool stringer -type Category -linecomment
const (
	// MissingGuard is an access made without holding any lock.
	MissingGuard Category = iota // missing-guard

	// MismatchedGuard is an access made while holding locks that differ from the dominant ones.
	MismatchedGuard // mismatched-guard
)
