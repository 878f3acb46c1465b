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

// Package suffixtree builds compressed suffix trees with Ukkonen's online
// algorithm and answers exact substring occurrence queries against them.
//
// A Tree is immutable once Build returns, so any number of goroutines may
// search it concurrently.
package suffixtree

const (
	noNode   int32 = -1
	noEdge   int32 = -1
	rootNode int32 = 0

	// internalLabel marks a node that is not a leaf.
	internalLabel int32 = -1
)

// node is a vertex in the arena. Leaves carry the start offset of the suffix
// they terminate.
type node struct {
	label int32
	// link is the suffix link of an internal node; root links to itself.
	link  int32
	edges []int32
}

func (n *node) isLeaf() bool { return n.label != internalLabel }

// edge covers the inclusive buffer range [start, end]. Open edges lead to
// leaves and end wherever the tree's current end is.
type edge struct {
	from  int32
	to    int32
	start int32
	end   int32
	open  bool
}

// Tree is a compressed suffix tree over a single input.
type Tree struct {
	buf   buffer
	nodes []node
	edges []edge

	// end is the global end of every open edge. It advances once per phase.
	end    int32
	phases int
	leaves int
}

func newTree(buf buffer) *Tree {
	n := int(buf.len())
	t := &Tree{
		buf:   buf,
		nodes: make([]node, 0, 2*n),
		edges: make([]edge, 0, 2*n),
		end:   -1,
	}
	root := t.newNode(internalLabel)
	t.nodes[root].link = root
	return t
}

func (t *Tree) newNode(label int32) int32 {
	t.nodes = append(t.nodes, node{label: label, link: noNode})
	if label != internalLabel {
		t.leaves++
	}
	return int32(len(t.nodes) - 1)
}

func (t *Tree) edgeEnd(h int32) int32 {
	if e := &t.edges[h]; !e.open {
		return e.end
	}
	return t.end
}

func (t *Tree) edgeLen(h int32) int32 {
	return t.edgeEnd(h) - t.edges[h].start + 1
}

// findEdge returns the outgoing edge of n whose label starts with c.
func (t *Tree) findEdge(n int32, c byte) int32 {
	for _, h := range t.nodes[n].edges {
		if t.buf.at(t.edges[h].start) == c {
			return h
		}
	}
	return noEdge
}

// addEdge appends an outgoing edge to from. No sibling may start with the
// same byte, since the first byte is the only lookup key.
func (t *Tree) addEdge(from, to, start, end int32, open bool) int32 {
	invariant(t.findEdge(from, t.buf.at(start)) == noEdge,
		"node %d already has an edge starting with %q", from, t.buf.at(start))
	h := int32(len(t.edges))
	t.edges = append(t.edges, edge{from: from, to: to, start: start, end: end, open: open})
	t.nodes[from].edges = append(t.nodes[from].edges, h)
	return h
}

// split materializes an internal node w inside edge u→v at position at. The
// edge is rewritten in place as u→w over [start, at] and returned; w→v covers
// [at+1, end] and keeps the original openness.
func (t *Tree) split(h, at int32) int32 {
	e := t.edges[h]
	invariant(at >= e.start && at < t.edgeEnd(h), "split of edge %d at %d out of range", h, at)
	w := t.newNode(internalLabel)
	t.edges[h] = edge{from: e.from, to: w, start: e.start, end: at}
	t.addEdge(w, e.to, at+1, e.end, e.open)
	return h
}

// Len returns the length of the indexed input, terminator excluded.
func (t *Tree) Len() int { return len(t.buf.data) - 1 }

// Terminator returns the byte appended to the input.
func (t *Tree) Terminator() byte { return t.buf.term }

// Text returns a copy of the indexed input. It is never nil.
func (t *Tree) Text() []byte {
	text := make([]byte, t.Len())
	copy(text, t.buf.input())
	return text
}

// Stats describes the shape of a finished tree.
type Stats struct {
	Nodes    int
	Internal int
	Leaves   int
	Edges    int
	Phases   int
}

func (t *Tree) Stats() Stats {
	return Stats{
		Nodes:    len(t.nodes),
		Internal: len(t.nodes) - t.leaves,
		Leaves:   t.leaves,
		Edges:    len(t.edges),
		Phases:   t.phases,
	}
}

// Walk calls fn with the suffix offset of every leaf, the terminator-only
// suffix included, until fn returns false.
func (t *Tree) Walk(fn func(offset int) bool) {
	t.leavesBelow(rootNode, fn)
}

// leavesBelow visits the leaves under n depth first without recursion.
func (t *Tree) leavesBelow(n int32, fn func(offset int) bool) {
	stack := []int32{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[cur]
		if nd.isLeaf() {
			if !fn(int(nd.label)) {
				return
			}
			continue
		}
		for _, h := range nd.edges {
			stack = append(stack, t.edges[h].to)
		}
	}
}
