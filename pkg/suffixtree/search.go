// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package suffixtree

import (
	"bytes"
	"slices"
)

// Search returns the offsets, in ascending order, at which pattern occurs in
// the input. It returns nil if there is no occurrence. An empty pattern, or
// one containing the terminator, never matches.
func (t *Tree) Search(pattern []byte) []int {
	n, ok := t.locate(pattern)
	if !ok {
		return nil
	}
	var offsets []int
	t.leavesBelow(n, func(offset int) bool {
		offsets = append(offsets, offset)
		return true
	})
	slices.Sort(offsets)
	return offsets
}

// SearchString is Search for string patterns.
func (t *Tree) SearchString(pattern string) []int {
	return t.Search([]byte(pattern))
}

// Contains reports whether pattern occurs in the input.
func (t *Tree) Contains(pattern []byte) bool {
	_, ok := t.locate(pattern)
	return ok
}

// Count returns the number of occurrences of pattern.
func (t *Tree) Count(pattern []byte) int {
	n, ok := t.locate(pattern)
	if !ok {
		return 0
	}
	count := 0
	t.leavesBelow(n, func(int) bool {
		count++
		return true
	})
	return count
}

// locate matches pattern from the root and returns the node at or below the
// point where the pattern ends. Every leaf under that node is an occurrence.
func (t *Tree) locate(pattern []byte) (int32, bool) {
	if len(pattern) == 0 || bytes.IndexByte(pattern, t.buf.term) >= 0 {
		return noNode, false
	}

	cur, q := rootNode, 0
	for {
		h := t.findEdge(cur, pattern[q])
		if h == noEdge {
			return noNode, false
		}
		end := t.edgeEnd(h)
		for k := t.edges[h].start; k <= end && q < len(pattern); k++ {
			if t.buf.at(k) != pattern[q] {
				return noNode, false
			}
			q++
		}
		if q == len(pattern) {
			return t.edges[h].to, true
		}
		cur = t.edges[h].to
	}
}
