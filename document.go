// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mdast

import (
	"fmt"
	"strings"
)

// A Document is a parsed Markdown document.
//
// During block parsing, a Document also tracks the deepest open node,
// which is where new content is added.
// Closing a node runs its normalization and moves to its parent.
type Document struct {
	// Root is the [DocumentKind] node at the top of the tree.
	Root *Node

	current *Node
}

func newDocument() *Document {
	root := &Node{kind: DocumentKind}
	return &Document{Root: root, current: root}
}

// currentKind returns the kind of the deepest open node.
func (d *Document) currentKind() NodeKind {
	return d.current.kind
}

// open appends a new node of the given kind to the current node
// and makes it current.
func (d *Document) open(kind NodeKind) *Node {
	n := &Node{kind: kind}
	d.openNode(n)
	return n
}

func (d *Document) openNode(n *Node) {
	d.current.appendChild(n)
	d.current = n
}

// openWithRaw opens a node of the given kind
// whose first child is a raw line of inline content.
func (d *Document) openWithRaw(kind NodeKind, s string) {
	d.open(kind)
	d.addRaw(s)
}

// addNode appends n to the current node without opening it.
func (d *Document) addNode(n *Node) {
	d.current.appendChild(n)
}

// addRaw appends a closed raw node to the current node.
func (d *Document) addRaw(s string) {
	d.addNode(newRaw(s))
}

// close finalizes the current node and makes its parent current.
// It panics if the current node is the root.
func (d *Document) close() {
	if d.current == d.Root {
		panic("close of document root")
	}
	d.current.finalize()
	d.current = d.current.parent
}

// closeAll closes every open node except the root.
func (d *Document) closeAll() {
	for d.current != d.Root {
		d.close()
	}
}

// closeUntilContainerBlock closes nodes until the current node
// is the document or a block quote.
// If disallowBlockQuote is true, block quotes are closed too.
func (d *Document) closeUntilContainerBlock(disallowBlockQuote bool) {
	for d.current != d.Root {
		if d.current.kind.isContainerBlock() && !(disallowBlockQuote && d.current.kind == BlockQuoteKind) {
			return
		}
		d.close()
	}
}

// closeUntilIncluding closes nodes up to and including
// the nearest open node of the given kind.
func (d *Document) closeUntilIncluding(kind NodeKind) {
	for d.current.kind != kind {
		d.close()
	}
	d.close()
}

// findParent returns the nearest open node of the given kind,
// starting at the current node,
// or nil if no open node has that kind.
func (d *Document) findParent(kind NodeKind) *Node {
	for n := d.current; n != nil; n = n.parent {
		if n.kind == kind {
			return n
		}
	}
	return nil
}

// Dump returns an indented textual outline of the document tree
// suitable for debugging.
func (d *Document) Dump() string {
	sb := new(strings.Builder)
	Walk(d.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			sb.WriteString(strings.Repeat("  ", c.Depth()))
			sb.WriteString(n.Kind().String())
			if desc := describe(n); desc != "" {
				sb.WriteString(" ")
				sb.WriteString(desc)
			}
			sb.WriteString("\n")
			return true
		},
	})
	return sb.String()
}

func describe(n *Node) string {
	switch n.Kind() {
	case TextKind, RawKind:
		return fmt.Sprintf("%q", n.text)
	case ATXHeadingKind:
		return fmt.Sprintf("(level=%d)", n.level)
	case FencedCodeBlockKind:
		return fmt.Sprintf("(fence=%q indent=%d info=%q)",
			strings.Repeat(string(n.fence.char), n.fence.length), n.fence.indent, n.fence.info)
	case CodeSpanKind:
		return fmt.Sprintf("(backticks=%d)", n.backticks)
	case EmphasisKind:
		return fmt.Sprintf("(%v)", n.emphasis)
	case LinkKind:
		return fmt.Sprintf("(%v destination=%q)", n.link, n.destination)
	default:
		return ""
	}
}
