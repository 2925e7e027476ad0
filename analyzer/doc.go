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
// Package analyzer implements the lockstat static analysis pass.
//
// # Overview
//
// LockStat infers which lock protects a struct field from how the field is used, and reports
// the accesses that do not follow the majority.
//
// Every access to a field is recorded together with the locks held at that point. A lock
// counts as held in the statements following a call to its Lock or RLock method in the same
// block, up to the matching Unlock or RUnlock. A deferred Unlock keeps the lock held until the
// end of the block.
//
// # Example
//
//	func (c *Cache) Get(k string) int {
//	    c.mu.Lock()
//	    defer c.mu.Unlock()
//	    return c.entries[k]
//	}
//
//	func (c *Cache) Put(k string, v int) {
//	    c.mu.Lock()
//	    defer c.mu.Unlock()
//	    c.entries[k] = v
//	}
//
//	func (c *Cache) Delete(k string) {
//	    c.mu.Lock()
//	    c.mu.Unlock()
//	    delete(c.entries, k) // 'Cache.entries' accessed without holding 'Cache.mu'
//	}
//
// # Locks
//
// Any type with Lock and Unlock methods without parameters and results is a lock, which
// includes [sync.Mutex], [sync.RWMutex] and embedded mutexes. With the trylock option a
// successful TryLock or TryRLock also acquires the lock.
//
// Function literals started by a go statement do not inherit the locks held by the
// enclosing function.
//
// # Scope
//
// As an analysis pass, lockstat sees one package at a time. Use the lockstat command to
// aggregate accesses across all packages of a program.
package analyzer
