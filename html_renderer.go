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
	"io"

	"golang.org/x/net/html/atom"
)

// A Renderer converts a parsed document tree into text.
type Renderer interface {
	// Render returns the rendered form of n and its descendants.
	// Render panics if the tree contains a kind of node
	// the renderer has no rule for.
	Render(n *Node) string
}

// RenderTo writes the rendered form of n to w.
func RenderTo(w io.Writer, r Renderer, n *Node) error {
	if _, err := io.WriteString(w, r.Render(n)); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

// An HTMLRenderer converts a fully parsed document into HTML.
// All text is escaped, so the output only contains
// a fixed set of elements.
type HTMLRenderer struct{}

// Render returns the HTML for n.
func (r *HTMLRenderer) Render(n *Node) string {
	return string(r.AppendNode(nil, n))
}

// AppendNode appends the rendered HTML of a fully parsed node to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendNode(dst []byte, n *Node) []byte {
	state := &renderState{dst: dst}
	state.html(n)
	return state.dst
}

type renderState struct {
	dst []byte
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) escape(s string) {
	r.dst = escapeHTML(r.dst, s)
}

func (r *renderState) html(n *Node) {
	switch n.Kind() {
	case TextKind, RawKind:
		r.escape(n.Text())
	case DocumentKind:
		r.htmlChildren(n)
	case ParagraphKind:
		r.openTag(atom.P)
		r.htmlChildren(n)
		r.closeTag(atom.P)
		r.dst = append(r.dst, '\n')
	case BlockQuoteKind:
		r.openTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
		r.htmlChildren(n)
		r.closeTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
	case ATXHeadingKind:
		tag := headingTag(n.HeadingLevel())
		r.openTag(tag)
		r.htmlChildren(n)
		r.closeTag(tag)
		r.dst = append(r.dst, '\n')
	case ThematicBreakKind:
		r.openTag(atom.Hr)
		r.dst = append(r.dst, '\n')
	case IndentedCodeBlockKind, FencedCodeBlockKind:
		r.openTag(atom.Pre)
		r.openTag(atom.Code)
		r.htmlChildren(n)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.dst = append(r.dst, '\n')
	case EmphasisKind:
		tag := emphasisTag(n.EmphasisType())
		r.openTag(tag)
		r.htmlChildren(n)
		r.closeTag(tag)
	case CodeSpanKind:
		r.openTag(atom.Code)
		r.htmlChildren(n)
		r.closeTag(atom.Code)
	case LinkKind:
		r.dst = append(r.dst, `<a href="`...)
		r.escape(n.Destination())
		r.dst = append(r.dst, `">`...)
		r.htmlChildren(n)
		r.closeTag(atom.A)
	default:
		panic(fmt.Errorf("HTMLRenderer: no rule for %v node", n.Kind()))
	}
}

func (r *renderState) htmlChildren(n *Node) {
	for _, c := range n.Children() {
		r.html(c)
	}
}

var headingTags = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingTag(level int) atom.Atom {
	if level < 1 || level > len(headingTags) {
		panic(fmt.Errorf("invalid heading level %d", level))
	}
	return headingTags[level-1]
}

func emphasisTag(t EmphasisType) atom.Atom {
	switch t {
	case Bold:
		return atom.B
	case Italic:
		return atom.I
	case Strikethrough:
		return atom.S
	case Spoiler:
		return atom.Span
	default:
		panic(fmt.Errorf("no tag for %v", t))
	}
}
