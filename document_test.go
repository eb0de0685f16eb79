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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentBuilder(t *testing.T) {
	d := newDocument()
	d.open(BlockQuoteKind)
	d.openWithRaw(ParagraphKind, "a")
	d.addRaw("b")
	if got := d.findParent(BlockQuoteKind); got.Kind() != BlockQuoteKind {
		t.Errorf("findParent(BlockQuoteKind) = %v; want block quote", got.Kind())
	}
	if got := d.findParent(ParagraphKind); got != d.current {
		t.Error("findParent(ParagraphKind) is not the current node")
	}
	if got := d.findParent(FencedCodeBlockKind); got != nil {
		t.Errorf("findParent(FencedCodeBlockKind) = %v; want <nil>", got.Kind())
	}
	d.closeUntilContainerBlock(false)
	if got := d.currentKind(); got != BlockQuoteKind {
		t.Errorf("after closeUntilContainerBlock(false), current = %v; want %v", got, BlockQuoteKind)
	}
	d.open(ParagraphKind)
	d.closeUntilContainerBlock(true)
	if got := d.currentKind(); got != DocumentKind {
		t.Errorf("after closeUntilContainerBlock(true), current = %v; want %v", got, DocumentKind)
	}
	d.open(IndentedCodeBlockKind)
	for _, s := range []string{"\n", "x\n", "\n", "y\n", "  \n", "\n"} {
		d.addNode(newText(s))
	}
	d.closeAll()
	if d.current != d.Root {
		t.Error("closeAll did not return to the root")
	}

	const want = "document\n" +
		"  block_quote\n" +
		"    paragraph\n" +
		"      raw \"a\"\n" +
		"      raw \"b\"\n" +
		"    paragraph\n" +
		"  indented_code_block\n" +
		"    text \"x\\n\"\n" +
		"    text \"\\n\"\n" +
		"    text \"y\\n\"\n"
	if diff := cmp.Diff(want, d.Dump()); diff != "" {
		t.Errorf("Dump() (-want +got):\n%s", diff)
	}
}

func TestCloseUntilIncluding(t *testing.T) {
	d := newDocument()
	d.open(BlockQuoteKind)
	d.open(ATXHeadingKind)
	d.closeUntilIncluding(BlockQuoteKind)
	if d.current != d.Root {
		t.Errorf("current = %v; want document", d.currentKind())
	}
}

func TestCloseRoot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("close of document root did not panic")
		}
	}()
	newDocument().close()
}

func TestNodeParents(t *testing.T) {
	doc := ParseDocument("> a **b [c](d)**\n\n    e\n", nil)
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if got := c.Node().Parent(); got != c.Parent() {
				t.Errorf("%v node has Parent() = %v; want %v", c.Node().Kind(), got.Kind(), c.Parent().Kind())
			}
			return true
		},
	})
}

func TestCodeSpanNormalization(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"", ""},
		{"a", "a"},
		{" a ", "a"},
		{"  a  ", " a "},
		{" a", " a"},
		{"a ", "a "},
		{" ", " "},
		{"   ", "   "},
		{"a\nb", "a b"},
		{"\na\n", "a"},
		{" \n ", "   "},
	}
	for _, test := range tests {
		n := &Node{kind: CodeSpanKind}
		n.appendChild(newText(test.content))
		n.finalize()
		if got := n.Child(0).Text(); got != test.want {
			t.Errorf("code span %q normalized to %q; want %q", test.content, got, test.want)
		}
	}
}

func TestWalk(t *testing.T) {
	doc := ParseDocument("# a\n\n> b *c*\n", nil)
	var pre, post []string
	Walk(doc.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			pre = append(pre, c.Node().Kind().String())
			// Skip heading content.
			return c.Node().Kind() != ATXHeadingKind
		},
		Post: func(c *Cursor) bool {
			post = append(post, c.Node().Kind().String())
			return c.Node().Kind() != EmphasisKind
		},
	})
	wantPre := []string{"document", "atx_heading", "block_quote", "paragraph", "text", "emphasis", "text"}
	if diff := cmp.Diff(wantPre, pre); diff != "" {
		t.Errorf("pre-order (-want +got):\n%s", diff)
	}
	wantPost := []string{"text", "text", "emphasis"}
	if diff := cmp.Diff(wantPost, post); diff != "" {
		t.Errorf("post-order (-want +got):\n%s", diff)
	}
}

func TestNodeKindIsBlock(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want bool
	}{
		{DocumentKind, true},
		{BlockQuoteKind, true},
		{ThematicBreakKind, true},
		{ATXHeadingKind, true},
		{ParagraphKind, true},
		{IndentedCodeBlockKind, true},
		{FencedCodeBlockKind, true},
		{RawKind, false},
		{TextKind, false},
		{EmphasisKind, false},
		{CodeSpanKind, false},
		{LinkKind, false},
	}
	for _, test := range tests {
		if got := test.kind.IsBlock(); got != test.want {
			t.Errorf("%v.IsBlock() = %t; want %t", test.kind, got, test.want)
		}
	}
}
