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

// A Node is an element in a parsed Markdown document.
// Nodes form a tree rooted at a [DocumentKind] node;
// every node except the root has a parent.
type Node struct {
	kind     NodeKind
	parent   *Node
	children []*Node

	// text is the content of a RawKind or TextKind node.
	text string

	level       int // ATXHeadingKind
	fence       fence
	backticks   int
	emphasis    EmphasisType
	attr        string
	link        LinkType
	destination string
}

type fence struct {
	char   rune
	length int
	indent int
	info   string
}

// Kind returns the type of node or zero if n is nil.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Parent returns the node's parent or nil if n is the root of the tree.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Text returns the content of a [TextKind] or [RawKind] node.
// It returns the empty string for other kinds of nodes.
func (n *Node) Text() string {
	switch n.Kind() {
	case TextKind, RawKind:
		return n.text
	default:
		return ""
	}
}

// HeadingLevel returns the 1-based level of an [ATXHeadingKind] node
// or 0 for other kinds of nodes.
func (n *Node) HeadingLevel() int {
	if n.Kind() != ATXHeadingKind {
		return 0
	}
	return n.level
}

// FenceChar returns the character ('`' or '~') that opened
// a [FencedCodeBlockKind] node or 0 for other kinds of nodes.
func (n *Node) FenceChar() rune {
	if n.Kind() != FencedCodeBlockKind {
		return 0
	}
	return n.fence.char
}

// FenceLength returns the number of fence characters that opened
// a [FencedCodeBlockKind] node.
func (n *Node) FenceLength() int {
	if n.Kind() != FencedCodeBlockKind {
		return 0
	}
	return n.fence.length
}

// FenceIndent returns the number of spaces before the opening fence
// of a [FencedCodeBlockKind] node.
func (n *Node) FenceIndent() int {
	if n.Kind() != FencedCodeBlockKind {
		return 0
	}
	return n.fence.indent
}

// InfoString returns the info string of a [FencedCodeBlockKind] node.
func (n *Node) InfoString() string {
	if n.Kind() != FencedCodeBlockKind {
		return ""
	}
	return n.fence.info
}

// Backticks returns the length of the backtick string
// that delimits a [CodeSpanKind] node.
func (n *Node) Backticks() int {
	if n.Kind() != CodeSpanKind {
		return 0
	}
	return n.backticks
}

// EmphasisType returns the type of an [EmphasisKind] node.
func (n *Node) EmphasisType() EmphasisType {
	if n.Kind() != EmphasisKind {
		return 0
	}
	return n.emphasis
}

// Attr returns the extra attribute text written into the opening tag
// of a [Spoiler] node by [TagRenderer].
func (n *Node) Attr() string {
	if n.Kind() != EmphasisKind {
		return ""
	}
	return n.attr
}

// LinkType returns the type of a [LinkKind] node.
func (n *Node) LinkType() LinkType {
	if n.Kind() != LinkKind {
		return 0
	}
	return n.link
}

// Destination returns the destination of a [LinkKind] node.
func (n *Node) Destination() string {
	if n.Kind() != LinkKind {
		return ""
	}
	return n.destination
}

func newText(s string) *Node {
	return &Node{kind: TextKind, text: s}
}

func newRaw(s string) *Node {
	return &Node{kind: RawKind, text: s}
}

func (n *Node) appendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) appendChildren(children []*Node) {
	for _, c := range children {
		n.appendChild(c)
	}
}

// replaceChildren discards n's children and adopts the given nodes.
func (n *Node) replaceChildren(children []*Node) {
	n.children = make([]*Node, 0, len(children))
	n.appendChildren(children)
}

func (n *Node) lastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// finalize runs the node's normalization hook.
// It is called when the node is closed.
func (n *Node) finalize() {
	switch n.kind {
	case IndentedCodeBlockKind:
		n.trimBlankLines()
	case CodeSpanKind:
		n.normalizeCodeSpan()
	}
}

// trimBlankLines removes leading and trailing blank lines
// from an indented code block.
func (n *Node) trimBlankLines() {
	isBlank := func(c *Node) bool {
		return c.kind == TextKind && newLine([]rune(c.text)).blank(true)
	}
	start, end := 0, len(n.children)
	for start < end && isBlank(n.children[start]) {
		start++
	}
	for end > start && isBlank(n.children[end-1]) {
		end--
	}
	n.children = n.children[start:end]
}

// normalizeCodeSpan converts line endings to spaces
// and then strips a single space from both ends of the content
// if the content both begins and ends with a space
// and does not consist entirely of spaces.
func (n *Node) normalizeCodeSpan() {
	spacesOnly := len(n.children) > 0
	for _, c := range n.children {
		if c.kind != TextKind {
			spacesOnly = false
			continue
		}
		c.text = strings.ReplaceAll(c.text, "\n", " ")
		if c.text == "" || strings.Trim(c.text, " ") != "" {
			spacesOnly = false
		}
	}
	if spacesOnly || len(n.children) == 0 {
		return
	}
	first, last := n.children[0], n.lastChild()
	if first.kind != TextKind || last.kind != TextKind ||
		!strings.HasPrefix(first.text, " ") || !strings.HasSuffix(last.text, " ") {
		return
	}
	if first == last && len(first.text) < 2 {
		return
	}
	first.text = first.text[1:]
	last.text = last.text[:len(last.text)-1]
}

// NodeKind is an enumeration of values returned by [*Node.Kind].
type NodeKind uint16

const (
	DocumentKind NodeKind = 1 + iota
	BlockQuoteKind
	// RawKind is a line of unparsed inline content.
	// Raw nodes only exist between block parsing and inline parsing.
	RawKind
	TextKind
	ThematicBreakKind
	ATXHeadingKind
	ParagraphKind
	IndentedCodeBlockKind
	FencedCodeBlockKind
	EmphasisKind
	CodeSpanKind
	LinkKind
)

var nodeKindNames = [...]string{
	DocumentKind:          "document",
	BlockQuoteKind:        "block_quote",
	RawKind:               "raw",
	TextKind:              "text",
	ThematicBreakKind:     "thematic_break",
	ATXHeadingKind:        "atx_heading",
	ParagraphKind:         "paragraph",
	IndentedCodeBlockKind: "indented_code_block",
	FencedCodeBlockKind:   "fenced_code_block",
	EmphasisKind:          "emphasis",
	CodeSpanKind:          "code_span",
	LinkKind:              "link",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// IsBlock reports whether k is a kind of block node.
func (k NodeKind) IsBlock() bool {
	switch k {
	case DocumentKind, BlockQuoteKind, ThematicBreakKind, ATXHeadingKind,
		ParagraphKind, IndentedCodeBlockKind, FencedCodeBlockKind:
		return true
	default:
		return false
	}
}

// isContainerBlock reports whether nodes of kind k can contain blocks.
func (k NodeKind) isContainerBlock() bool {
	return k == DocumentKind || k == BlockQuoteKind
}

// EmphasisType is an enumeration of the styles of [EmphasisKind] nodes.
type EmphasisType uint8

const (
	Bold EmphasisType = 1 + iota
	Italic
	Strikethrough
	Spoiler
)

func (t EmphasisType) String() string {
	switch t {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Strikethrough:
		return "strikethrough"
	case Spoiler:
		return "spoiler"
	default:
		return fmt.Sprintf("EmphasisType(%d)", uint8(t))
	}
}

// LinkType is an enumeration of the forms of [LinkKind] nodes.
type LinkType uint8

const (
	// NormalLink is written as [text](destination).
	NormalLink LinkType = 1 + iota
	// Autolink is written as <scheme:destination>.
	Autolink
)

func (t LinkType) String() string {
	switch t {
	case NormalLink:
		return "normal"
	case Autolink:
		return "autolink"
	default:
		return fmt.Sprintf("LinkType(%d)", uint8(t))
	}
}
