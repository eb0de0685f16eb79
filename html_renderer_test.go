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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHTMLRenderer(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Document",
			markdown: "# Hello\n\nThis is **bold** and *em*.\n",
			want:     "<h1>Hello</h1>\n<p>This is <b>bold</b> and <i>em</i>.</p>\n",
		},
		{
			name:     "FencedCode",
			markdown: "```js\ncode\n```",
			want:     "<pre><code>code\n</code></pre>\n",
		},
		{
			name:     "EmphasisTags",
			markdown: "~~a~~ ||b||",
			want:     "<p><s>a</s> <span>b</span></p>\n",
		},
		{
			name:     "EscapedText",
			markdown: "\"&<>\u00a1\u00a2\u00a3\u00a4\u00a5\u00a6\u00a7\u00a8\u00a9\u00aa\u00ab\u00ac\u00ad\u00ae\u00af\u00b0",
			want:     "<p>&quot;&amp;&lt;&gt;&iexcl;&cent;&pound;&curren;&yen;&brvbar;&sect;&uml;&copy;&ordf;&laquo;&not;&shy;&reg;&macr;\u00b0</p>\n",
		},
		{
			name:     "EscapedDestination",
			markdown: `[a](b"c&d)`,
			want:     "<p><a href=\"b&quot;c&amp;d\">a</a></p>\n",
		},
		{
			name:     "EscapedCode",
			markdown: "`<a>`\n\n    <b>\n",
			want:     "<p><code>&lt;a&gt;</code></p>\n<pre><code>&lt;b&gt;\n</code></pre>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := ParseDocument(test.markdown, nil)
			got := new(HTMLRenderer).Render(doc.Root)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s\nTree:\n%s", test.markdown, diff, doc.Dump())
			}
		})
	}
}

func TestHTMLRendererThematicBreak(t *testing.T) {
	root := &Node{kind: DocumentKind}
	root.appendChild(&Node{kind: ThematicBreakKind})
	if got, want := new(HTMLRenderer).Render(root), "<hr>\n"; got != want {
		t.Errorf("Render(thematic break) = %q; want %q", got, want)
	}
}

func TestRenderRaw(t *testing.T) {
	doc := ParseBlocks("a<b", nil)
	if got, want := new(HTMLRenderer).Render(doc.Root), "<p>a&lt;b</p>\n"; got != want {
		t.Errorf("(*HTMLRenderer).Render(ParseBlocks(...).Root) = %q; want %q", got, want)
	}
	if got, want := new(TagRenderer).Render(doc.Root), "a&lt;b\n\n"; got != want {
		t.Errorf("(*TagRenderer).Render(ParseBlocks(...).Root) = %q; want %q", got, want)
	}
}

func TestAppendNode(t *testing.T) {
	doc := ParseDocument("a", nil)
	got := new(HTMLRenderer).AppendNode([]byte("x"), doc.Root)
	if want := "x<p>a</p>\n"; string(got) != want {
		t.Errorf("AppendNode = %q; want %q", got, want)
	}
	got = new(TagRenderer).AppendNode([]byte("x"), doc.Root)
	if want := "xa\n\n"; string(got) != want {
		t.Errorf("AppendNode = %q; want %q", got, want)
	}
}

func TestRendererMissingRule(t *testing.T) {
	tests := []struct {
		name     string
		renderer Renderer
		node     *Node
	}{
		{"HTMLUnknown", new(HTMLRenderer), &Node{kind: NodeKind(99)}},
		{"TagUnknown", new(TagRenderer), &Node{kind: NodeKind(99)}},
		{"TagThematicBreak", new(TagRenderer), &Node{kind: ThematicBreakKind}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Render(%v) did not panic", test.node.Kind())
				}
			}()
			test.renderer.Render(test.node)
		})
	}
}

func TestTagRenderer(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Paragraphs",
			markdown: "a\n\nb",
			want:     "a\n\nb\n\n",
		},
		{
			name:     "BlockQuote",
			markdown: "> q",
			want:     "<blockquote>q\n\n</blockquote>\n",
		},
		{
			name:     "Heading",
			markdown: "## h",
			want:     "<h2>h</h2>\n",
		},
		{
			name:     "FencedCodeWithLanguage",
			markdown: "```js\ncode\n```",
			want:     "<pre data-language=\"js\"><code>code\n</code></pre>\n",
		},
		{
			name:     "FencedCodeWithoutLanguage",
			markdown: "~~~\ncode\n~~~",
			want:     "<pre><code>code\n</code></pre>\n",
		},
		{
			name:     "IndentedCode",
			markdown: "    x",
			want:     "<pre><code>x\n</code></pre>\n",
		},
		{
			name:     "Spoiler",
			markdown: "||s|| **b** __i__ ~~d~~",
			want:     "<span class=\"tg-spoiler\">s</span> <b>b</b> <i>i</i> <s>d</s>\n\n",
		},
		{
			name:     "VerbatimText",
			markdown: "&amp; <",
			want:     "&amp; <\n\n",
		},
		{
			name:     "Link",
			markdown: "[a](b&amp;c) `x`",
			want:     "<a href=\"b&amp;c\">a</a> <code>x</code>\n\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Renderer = new(TagRenderer)
			cfg.SpoilerSpanAttr = ` class="tg-spoiler"`
			got := Parse(test.markdown, cfg)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func TestRenderTo(t *testing.T) {
	doc := ParseDocument("a", nil)
	sb := new(strings.Builder)
	if err := RenderTo(sb, new(HTMLRenderer), doc.Root); err != nil {
		t.Error("RenderTo:", err)
	}
	if got, want := sb.String(), "<p>a</p>\n"; got != want {
		t.Errorf("RenderTo wrote %q; want %q", got, want)
	}

	errBoom := errors.New("boom")
	err := RenderTo(&failWriter{err: errBoom}, new(HTMLRenderer), doc.Root)
	if !errors.Is(err, errBoom) {
		t.Errorf("RenderTo(failing writer) = %v; want %v", err, errBoom)
	}
}

type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestRenderIsRepeatable(t *testing.T) {
	renderers := []Renderer{new(HTMLRenderer), new(TagRenderer)}
	for _, test := range loadTestSuite(t) {
		doc := ParseDocument(test.Markdown, nil)
		for _, r := range renderers {
			first := r.Render(doc.Root)
			if second := r.Render(doc.Root); first != second {
				t.Errorf("%T rendered example %d differently on second call:\nfirst:  %q\nsecond: %q",
					r, test.Example, first, second)
			}
		}
	}
}

func TestRenderPlainText(t *testing.T) {
	tests := []string{
		"hello world",
		"a < b & c > d",
		`say "hi"`,
		"caf\u00e9 \u00a9 2023",
		"see https://x.com/_a_/b",
		"1 * 2 = 2",
		"trailing #",
		"a]b(c",
	}
	for _, s := range tests {
		want := "<p>" + string(escapeHTML(nil, s)) + "</p>\n"
		if got := Parse(s, nil); got != want {
			t.Errorf("Parse(%q, nil) = %q; want %q", s, got, want)
		}
	}
}
