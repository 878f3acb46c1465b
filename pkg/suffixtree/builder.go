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

// Option configures Build.
type Option func(*options)

type options struct {
	terminator byte
}

// WithTerminator replaces DefaultTerminator.
func WithTerminator(term byte) Option {
	return func(o *options) {
		o.terminator = term
	}
}

// Build constructs the suffix tree of input in a single left-to-right pass.
// It fails with *InvalidInputError if input contains the terminator.
func Build(input []byte, opts ...Option) (*Tree, error) {
	o := options{terminator: DefaultTerminator}
	for _, opt := range opts {
		opt(&o)
	}

	buf, err := newBuffer(input, o.terminator)
	if err != nil {
		return nil, err
	}

	b := newBuilder(newTree(buf))
	b.run()
	return b.t, nil
}

// BuildString is Build for string input.
func BuildString(input string, opts ...Option) (*Tree, error) {
	return Build([]byte(input), opts...)
}

// rule is the extension rule applied by the last extension.
type rule uint8

const (
	ruleNone rule = iota
	// ruleNewLeaf hangs a new leaf off the active node (rule 4).
	ruleNewLeaf
	// ruleSplit branches inside the active edge (rule 2).
	ruleSplit
	// ruleFirstMatch finds the next byte as the first byte of an edge below
	// the active node (rule 2, alternate form).
	ruleFirstMatch
	// ruleMatch finds the next byte already on the active edge (rule 3).
	ruleMatch
)

// showstopper reports whether the rule ends the current phase.
func (r rule) showstopper() bool {
	return r == ruleFirstMatch || r == ruleMatch
}

// builder holds all construction state. It is discarded when Build returns.
type builder struct {
	t *Tree

	// Active point. activeEdge is the buffer position whose byte selects the
	// outgoing edge of activeNode; activeLen is the remainder length.
	activeNode int32
	activeEdge int32
	activeLen  int32

	// lastJ is the last extension that did explicit work. Extensions up to
	// lastJ stay implicit in every later phase.
	lastJ int32

	// pending is the internal node created by the previous extension of this
	// phase that still waits for its suffix link.
	pending int32

	lastRule rule
}

func newBuilder(t *Tree) *builder {
	return &builder{
		t:          t,
		activeNode: rootNode,
		lastJ:      -1,
		pending:    noNode,
	}
}

func (b *builder) run() {
	n := b.t.buf.len()
	for i := int32(0); i < n; i++ {
		b.phase(i)
	}
	invariant(b.t.leaves == int(n), "built %d leaves for %d suffixes", b.t.leaves, n)
}

// phase extends every suffix of buffer[..i-1] with buffer[i].
func (b *builder) phase(i int32) {
	b.t.end = i
	b.pending = noNode

	for j := b.lastJ + 1; j <= i; j++ {
		b.skipCount()
		b.lastRule = b.extend(j, i)
		if b.lastRule.showstopper() {
			break
		}
		b.lastJ = j
		b.moveToNext(j)
	}

	invariant(b.pending == noNode, "phase %d ended with node %d missing its suffix link", i, b.pending)
	b.t.phases++
}

// skipCount walks the remainder down from the active node comparing lengths
// only; the bytes are known to be on the path from earlier phases.
func (b *builder) skipCount() {
	t := b.t
	for b.activeLen > 0 {
		h := t.findEdge(b.activeNode, t.buf.at(b.activeEdge))
		invariant(h != noEdge, "no edge for remainder %q below node %d",
			t.buf.at(b.activeEdge), b.activeNode)
		l := t.edgeLen(h)
		if b.activeLen < l {
			return
		}
		b.activeNode = t.edges[h].to
		b.activeEdge += l
		b.activeLen -= l
	}
}

// extend makes buffer[j..i] explicit or finds it already present.
func (b *builder) extend(j, i int32) rule {
	t := b.t
	c := t.buf.at(i)

	if b.activeLen == 0 {
		if t.findEdge(b.activeNode, c) != noEdge {
			b.activeEdge = i
			b.activeLen = 1
			b.resolve(b.activeNode)
			return ruleFirstMatch
		}
		leaf := t.newNode(j)
		t.addEdge(b.activeNode, leaf, i, i, true)
		b.resolve(b.activeNode)
		return ruleNewLeaf
	}

	h := t.findEdge(b.activeNode, t.buf.at(b.activeEdge))
	invariant(h != noEdge, "active edge %q missing below node %d", t.buf.at(b.activeEdge), b.activeNode)
	next := t.edges[h].start + b.activeLen
	if t.buf.at(next) == c {
		b.activeLen++
		b.resolve(b.activeNode)
		return ruleMatch
	}

	t.split(h, next-1)
	w := t.edges[h].to
	leaf := t.newNode(j)
	t.addEdge(w, leaf, i, i, true)
	b.resolve(w)
	b.pending = w
	return ruleSplit
}

// resolve points the pending node's suffix link at target.
func (b *builder) resolve(target int32) {
	if b.pending == noNode {
		return
	}
	b.t.nodes[b.pending].link = target
	b.pending = noNode
}

// moveToNext moves the active point from extension j to j+1.
func (b *builder) moveToNext(j int32) {
	if b.activeNode == rootNode {
		// Root has no context to drop; shorten the remainder from the front.
		if b.activeLen > 0 {
			b.activeLen--
			b.activeEdge = j + 1
		}
		return
	}
	link := b.t.nodes[b.activeNode].link
	invariant(link != noNode, "active node %d has no suffix link", b.activeNode)
	b.activeNode = link
}
