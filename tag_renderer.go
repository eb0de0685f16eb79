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

	"golang.org/x/net/html/atom"
)

// A TagRenderer converts a fully parsed document
// into the restricted HTML subset accepted by chat clients.
//
// Unlike [HTMLRenderer], a TagRenderer writes text, link destinations,
// and info strings verbatim:
// the input is expected to be HTML-escaped already
// (see [Config.EscapedGtLt]).
// Only the content of unparsed [RawKind] nodes is escaped.
// Paragraphs have no tags and are separated by blank lines.
type TagRenderer struct{}

// Render returns the tag markup for n.
func (r *TagRenderer) Render(n *Node) string {
	return string(r.AppendNode(nil, n))
}

// AppendNode appends the rendered markup of a fully parsed node to dst
// and returns the resulting byte slice.
func (r *TagRenderer) AppendNode(dst []byte, n *Node) []byte {
	state := &renderState{dst: dst}
	state.tags(n)
	return state.dst
}

func (r *renderState) tags(n *Node) {
	switch n.Kind() {
	case TextKind:
		r.dst = append(r.dst, n.Text()...)
	case RawKind:
		r.escape(n.Text())
	case DocumentKind:
		r.tagsChildren(n)
	case ParagraphKind:
		r.tagsChildren(n)
		r.dst = append(r.dst, "\n\n"...)
	case BlockQuoteKind:
		r.openTag(atom.Blockquote)
		r.tagsChildren(n)
		r.closeTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
	case ATXHeadingKind:
		tag := headingTag(n.HeadingLevel())
		r.openTag(tag)
		r.tagsChildren(n)
		r.closeTag(tag)
		r.dst = append(r.dst, '\n')
	case FencedCodeBlockKind:
		if info := n.InfoString(); info != "" {
			r.dst = append(r.dst, `<pre data-language="`...)
			r.dst = append(r.dst, info...)
			r.dst = append(r.dst, `">`...)
		} else {
			r.openTag(atom.Pre)
		}
		r.openTag(atom.Code)
		r.tagsChildren(n)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.dst = append(r.dst, '\n')
	case IndentedCodeBlockKind:
		r.openTag(atom.Pre)
		r.openTag(atom.Code)
		r.tagsChildren(n)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.dst = append(r.dst, '\n')
	case EmphasisKind:
		tag := emphasisTag(n.EmphasisType())
		r.dst = append(r.dst, '<')
		r.dst = append(r.dst, tag.String()...)
		r.dst = append(r.dst, n.Attr()...)
		r.dst = append(r.dst, '>')
		r.tagsChildren(n)
		r.closeTag(tag)
	case CodeSpanKind:
		r.openTag(atom.Code)
		r.tagsChildren(n)
		r.closeTag(atom.Code)
	case LinkKind:
		r.dst = append(r.dst, `<a href="`...)
		r.dst = append(r.dst, n.Destination()...)
		r.dst = append(r.dst, `">`...)
		r.tagsChildren(n)
		r.closeTag(atom.A)
	default:
		panic(fmt.Errorf("TagRenderer: no rule for %v node", n.Kind()))
	}
}

func (r *renderState) tagsChildren(n *Node) {
	for _, c := range n.Children() {
		r.tags(c)
	}
}
