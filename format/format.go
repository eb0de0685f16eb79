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

// Package format provides a function to format a parsed Markdown document
// as normalized Markdown source.
package format

import (
	"io"
	"strings"

	"zombiezen.com/go/mdast"
)

// Format writes the given document as Markdown to the given writer.
// Blocks are separated by blank lines,
// italics are written with underscores,
// and link destinations are wrapped in angle brackets only when required.
// Angle brackets are always written unescaped,
// regardless of the options the document was parsed with.
func Format(w io.Writer, doc *mdast.Document) error {
	f := &formatter{w: &errWriter{w: w}}
	f.blocks(doc.Root.Children())
	return f.w.err
}

type formatter struct {
	w       *errWriter
	indents []string
}

func (f *formatter) blocks(blocks []*mdast.Node) {
	for i, b := range blocks {
		if i > 0 {
			writeTrimmedIndent(f.w, f.indents)
			f.w.WriteString("\n")
		}
		f.block(b)
	}
}

func (f *formatter) writeIndent() {
	for _, indent := range f.indents {
		f.w.WriteString(indent)
	}
}

func (f *formatter) block(b *mdast.Node) {
	switch b.Kind() {
	case mdast.ParagraphKind:
		f.writeIndent()
		f.inlines(b.Children())
		f.w.WriteString("\n")
	case mdast.ATXHeadingKind:
		f.writeIndent()
		f.w.WriteString(strings.Repeat("#", b.HeadingLevel()))
		if content := f.inlineString(b.Children()); content != "" {
			f.w.WriteString(" ")
			f.w.WriteString(content)
			if needsClosingSequence(content) {
				f.w.WriteString(" #")
			}
		}
		f.w.WriteString("\n")
	case mdast.BlockQuoteKind:
		f.indents = append(f.indents, "> ")
		f.blocks(b.Children())
		f.indents = f.indents[:len(f.indents)-1]
	case mdast.FencedCodeBlockKind:
		fence := strings.Repeat(string(b.FenceChar()), b.FenceLength())
		f.writeIndent()
		f.w.WriteString(fence)
		f.w.WriteString(b.InfoString())
		f.w.WriteString("\n")
		for _, c := range b.Children() {
			f.writeIndent()
			f.w.WriteString(c.Text())
		}
		f.writeIndent()
		f.w.WriteString(fence)
		f.w.WriteString("\n")
	case mdast.IndentedCodeBlockKind:
		for _, c := range b.Children() {
			if text := c.Text(); text == "\n" {
				writeTrimmedIndent(f.w, f.indents)
				f.w.WriteString("\n")
			} else {
				f.writeIndent()
				f.w.WriteString("    ")
				f.w.WriteString(text)
			}
		}
	}
}

func (f *formatter) inlines(nodes []*mdast.Node) {
	for _, n := range nodes {
		f.inline(n)
	}
}

// inlineString returns the formatted nodes without writing them.
func (f *formatter) inlineString(nodes []*mdast.Node) string {
	w := f.w
	sb := new(strings.Builder)
	f.w = &errWriter{w: sb}
	f.inlines(nodes)
	f.w = w
	return sb.String()
}

func (f *formatter) inline(n *mdast.Node) {
	switch n.Kind() {
	case mdast.TextKind, mdast.RawKind:
		f.indentedWrite(n.Text())
	case mdast.EmphasisKind:
		delim := emphasisDelimiter(n.EmphasisType())
		f.w.WriteString(delim)
		f.inlines(n.Children())
		f.w.WriteString(delim)
	case mdast.CodeSpanKind:
		ticks := strings.Repeat("`", n.Backticks())
		content := f.inlineString(n.Children())
		f.w.WriteString(ticks)
		if needsCodeSpanPadding(content) {
			f.w.WriteString(" ")
			f.w.WriteString(content)
			f.w.WriteString(" ")
		} else {
			f.w.WriteString(content)
		}
		f.w.WriteString(ticks)
	case mdast.LinkKind:
		if n.LinkType() == mdast.Autolink {
			f.w.WriteString("<")
			f.w.WriteString(n.Destination())
			f.w.WriteString(">")
			return
		}
		f.w.WriteString("[")
		f.inlines(n.Children())
		f.w.WriteString("](")
		if dest := n.Destination(); needsPointyDestination(dest) {
			f.w.WriteString("<")
			f.w.WriteString(dest)
			f.w.WriteString(">")
		} else {
			f.w.WriteString(dest)
		}
		f.w.WriteString(")")
	}
}

// indentedWrite writes s, repeating the current indent after each line feed.
func (f *formatter) indentedWrite(s string) {
	for {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			break
		}
		f.w.WriteString(s[:i+1])
		f.writeIndent()
		s = s[i+1:]
	}
	f.w.WriteString(s)
}

func emphasisDelimiter(t mdast.EmphasisType) string {
	switch t {
	case mdast.Bold:
		return "**"
	case mdast.Italic:
		return "__"
	case mdast.Strikethrough:
		return "~~"
	case mdast.Spoiler:
		return "||"
	default:
		panic("unreachable")
	}
}

// needsClosingSequence reports whether heading content
// would be read back as ending in a closing sequence.
func needsClosingSequence(content string) bool {
	rest := strings.TrimRight(content, "#")
	if rest == content {
		return false
	}
	return rest == "" || strings.HasSuffix(rest, " ") || strings.HasSuffix(rest, "\t")
}

// needsCodeSpanPadding reports whether code span content
// must be surrounded by a space on each side
// to be read back unchanged.
// Parsing strips exactly one space from each end
// of content that begins and ends with a space.
func needsCodeSpanPadding(content string) bool {
	if content == "" || strings.Trim(content, " ") == "" {
		return false
	}
	first, last := content[0], content[len(content)-1]
	return first == ' ' || first == '`' || last == ' ' || last == '`'
}

// needsPointyDestination reports whether a link destination
// must be written between angle brackets.
func needsPointyDestination(dest string) bool {
	if strings.ContainsRune(dest, ' ') || strings.HasPrefix(dest, "<") {
		return true
	}
	depth := 0
	for _, c := range dest {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return true
			}
		}
	}
	return depth != 0
}

// writeTrimmedIndent writes the concatenated indents
// without trailing whitespace, as used for blank lines.
func writeTrimmedIndent(w io.Writer, indents []string) error {
	end := len(indents)
	for ; end > 0; end-- {
		if strings.TrimRight(indents[end-1], " \t") != "" {
			break
		}
	}
	for i, indent := range indents[:end] {
		if i == end-1 {
			indent = strings.TrimRight(indent, " \t")
		}
		if _, err := io.WriteString(w, indent); err != nil {
			return err
		}
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
