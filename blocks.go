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
	"regexp"
	"strings"
)

// ParseBlocks performs the block parsing phase of Markdown parsing.
// It returns a [Document] whose paragraphs and headings
// hold their inline content as [RawKind] nodes.
// Use [*InlineParser.Rewrite] to finish parsing.
// A nil cfg is equivalent to [DefaultConfig].
func ParseBlocks(input string, cfg *Config) *Document {
	cfg = cfg.orDefault()
	if cfg.ConvertBrToNewlines {
		input = brTagPattern.ReplaceAllLiteralString(input, "\n")
	}
	p := &blockParser{
		cfg:   cfg,
		doc:   newDocument(),
		lines: newLines(input),
	}
	for !p.lines.eof() {
		p.parseLine(p.lines.next())
	}
	p.doc.closeAll()
	return p.doc
}

var brTagPattern = regexp.MustCompile(`<br([^>]*)?>`)

// codeBlockIndent is the number of spaces
// required to start an indented code block.
const codeBlockIndent = 4

// maxOpeningIndent is the number of spaces permitted
// before a block quote marker, heading, or code fence.
const maxOpeningIndent = 3

type blockParser struct {
	cfg   *Config
	doc   *Document
	lines *lines

	// Per-line state.
	quoteLevel int
	lazy       bool
}

// parseLine applies the block rules to a single line.
// Rules are tried in order; a rule that matches
// consumes part or all of the line,
// and the rules restart on whatever remains.
func (p *blockParser) parseLine(l *line) {
	p.quoteLevel = 0
	for first := true; first || !l.eol(); first = false {
		p.lazy = false
		if p.quoteLevel == 0 && p.doc.findParent(BlockQuoteKind) != nil {
			if p.parseBlockQuoteMarker(l) {
				p.quoteLevel++
			} else {
				p.lazy = true
			}
		}
		for _, rule := range blockStarts {
			if rule(p, l) {
				break
			}
		}
	}
}

var blockStarts = []func(*blockParser, *line) bool{
	// Fenced code block: opening, closing, or content line.
	func(p *blockParser, l *line) bool {
		if p.doc.currentKind() != FencedCodeBlockKind {
			n := parseCodeFence(l)
			if n == nil {
				return false
			}
			p.doc.closeUntilContainerBlock(p.lazy)
			p.doc.openNode(n)
			return true
		}
		fenced := p.doc.current
		if parseClosingCodeFence(l, &fenced.fence) {
			p.doc.close()
			return true
		}
		if p.lazy {
			return false
		}
		l.consume(' ', 0, fenced.fence.indent)
		p.doc.addNode(newText(l.consumeAll() + "\n"))
		return true
	},

	// ATX heading.
	func(p *blockParser, l *line) bool {
		if !p.cfg.EnableHeaders {
			return false
		}
		n := parseATXHeading(l)
		if n == nil {
			return false
		}
		p.doc.closeUntilContainerBlock(p.lazy)
		p.doc.openNode(n)
		return true
	},

	// Block quote.
	func(p *blockParser, l *line) bool {
		if p.doc.findParent(BlockQuoteKind) != nil || !p.parseBlockQuoteMarker(l) {
			return false
		}
		p.doc.closeUntilContainerBlock(p.lazy)
		p.doc.open(BlockQuoteKind)
		p.quoteLevel++
		return true
	},

	// Indented code block.
	func(p *blockParser, l *line) bool {
		kind := p.doc.currentKind()
		if kind == ParagraphKind {
			return false
		}
		continuing := !p.lazy && kind == IndentedCodeBlockKind
		text, ok := parseIndentedCode(l, continuing)
		if !ok {
			return false
		}
		if !continuing {
			p.doc.closeUntilContainerBlock(p.lazy)
			p.doc.open(IndentedCodeBlockKind)
		}
		p.doc.addNode(newText(text))
		return true
	},

	// Blank line.
	func(p *blockParser, l *line) bool {
		if !l.blank(false) {
			return false
		}
		if p.doc.currentKind() == ParagraphKind {
			p.doc.close()
		}
		if p.quoteLevel == 0 && p.doc.findParent(BlockQuoteKind) != nil {
			p.doc.closeUntilIncluding(BlockQuoteKind)
		}
		if p.doc.currentKind() == IndentedCodeBlockKind {
			p.doc.addNode(newText("\n"))
		}
		l.consumeAll()
		return true
	},

	// Paragraph start or continuation.
	func(p *blockParser, l *line) bool {
		l.consumeFunc(isSpaceOrTab, 0, unbounded)
		if p.doc.currentKind() == ParagraphKind {
			p.doc.addRaw(l.consumeAll())
			return true
		}
		p.doc.closeUntilContainerBlock(p.lazy)
		p.doc.openWithRaw(ParagraphKind, l.consumeAll())
		return true
	},
}

// parseBlockQuoteMarker attempts to consume a [block quote marker]
// from the beginning of the line.
//
// [block quote marker]: https://spec.commonmark.org/0.31.2/#block-quote-marker
func (p *blockParser) parseBlockQuoteMarker(l *line) bool {
	cp := l.save()
	l.consume(' ', 0, maxOpeningIndent)
	if !l.consumeString(p.cfg.gt()) {
		l.restore(cp)
		return false
	}
	l.consume(' ', 0, 1)
	l.commit(cp)
	return true
}

// parseATXHeading attempts to parse the line as an [ATX heading].
// On success, the whole line is consumed
// and the returned heading holds its content as a raw child.
//
// [ATX heading]: https://spec.commonmark.org/0.31.2/#atx-headings
func parseATXHeading(l *line) *Node {
	cp := l.save()
	l.consume(' ', 0, maxOpeningIndent)
	level, ok := l.consume('#', 1, 6)
	if !ok {
		l.restore(cp)
		return nil
	}

	// Optional closing sequence.
	closing := l.save()
	l.consumeTrailingFunc(isSpaceOrTab, 0, unbounded)
	if n, _ := l.consumeTrailing('#', 0, unbounded); n > 0 {
		if _, ok := l.consumeTrailingFunc(isSpaceOrTab, 1, unbounded); !ok {
			l.restore(closing)
			closing = 0
		}
	}
	if closing > 0 {
		l.commit(closing)
	}

	h := &Node{kind: ATXHeadingKind, level: level}
	if _, ok := l.consumeFunc(isSpaceOrTab, 1, unbounded); ok {
		h.appendChild(newRaw(l.consumeAll()))
	}
	if !l.eol() {
		l.restore(cp)
		return nil
	}
	l.commit(cp)
	return h
}

// parseCodeFence attempts to parse the line as a [code fence]
// that opens a fenced code block.
//
// [code fence]: https://spec.commonmark.org/0.31.2/#code-fence
func parseCodeFence(l *line) *Node {
	cp := l.save()
	indent, _ := l.consume(' ', 0, maxOpeningIndent)
	f := fence{indent: indent}
	if n, ok := l.consume('`', 3, unbounded); ok {
		f.char, f.length = '`', n
	} else if n, ok := l.consume('~', 3, unbounded); ok {
		f.char, f.length = '~', n
	} else {
		l.restore(cp)
		return nil
	}
	info := l.consumeAll()
	if f.char == '`' && strings.ContainsRune(info, '`') {
		l.restore(cp)
		return nil
	}
	f.info = strings.Trim(info, " \t")
	l.commit(cp)
	return &Node{kind: FencedCodeBlockKind, fence: f}
}

// parseClosingCodeFence attempts to parse the line
// as a closing code fence for f.
func parseClosingCodeFence(l *line, f *fence) bool {
	cp := l.save()
	l.consume(' ', 0, maxOpeningIndent)
	if _, ok := l.consume(f.char, f.length, unbounded); !ok {
		l.restore(cp)
		return false
	}
	l.consumeFunc(isSpaceOrTab, 0, unbounded)
	if !l.eol() {
		l.restore(cp)
		return false
	}
	l.commit(cp)
	return true
}

// parseIndentedCode attempts to parse the line
// as a line of an indented code block.
// A blank line only counts when continuing an existing block.
func parseIndentedCode(l *line, continuing bool) (string, bool) {
	cp := l.save()
	if _, ok := l.consume(' ', codeBlockIndent, codeBlockIndent); !ok {
		l.restore(cp)
		return "", false
	}
	if !continuing && l.blank(false) {
		l.restore(cp)
		return "", false
	}
	l.commit(cp)
	return l.consumeAll() + "\n", true
}
