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

// A token is a lexical unit of inline content:
// either a run of literal text or a delimiter.
type token struct {
	kind  tokenKind
	s     string
	flags uint8
}

const (
	// openerFlag is set on tokens that may open a span.
	openerFlag = 1 << iota
	// closerFlag is set on tokens that may close a span.
	closerFlag
)

func (tok *token) canOpen() bool  { return tok.flags&openerFlag != 0 }
func (tok *token) canClose() bool { return tok.flags&closerFlag != 0 }

type tokenKind int8

const (
	textToken tokenKind = 1 + iota
	backtickToken
	boldToken
	italicToken
	strikethroughToken
	spoilerToken
	// linkBoundaryToken is '[' or ')'.
	linkBoundaryToken
	// linkMiddleToken is "](".
	linkMiddleToken
	// angleBracketToken is '<' or '>' (or their escaped forms).
	angleBracketToken
)

func (k tokenKind) String() string {
	switch k {
	case textToken:
		return "text"
	case backtickToken:
		return "backtick"
	case boldToken:
		return "bold"
	case italicToken:
		return "italic"
	case strikethroughToken:
		return "strikethrough"
	case spoilerToken:
		return "spoiler"
	case linkBoundaryToken:
		return "link_boundary"
	case linkMiddleToken:
		return "link_middle"
	case angleBracketToken:
		return "angle_bracket"
	default:
		return fmt.Sprintf("tokenKind(%d)", int8(k))
	}
}

// precedence returns the binding strength of a token kind.
// A closing delimiter cannot match an opener
// that lies beneath an unmatched token of higher precedence.
func (k tokenKind) precedence() int {
	switch k {
	case backtickToken:
		return 15
	case linkBoundaryToken, linkMiddleToken, angleBracketToken:
		return 13
	case boldToken, italicToken, strikethroughToken, spoilerToken:
		return 10
	default:
		return 5
	}
}

func (k tokenKind) emphasisType() EmphasisType {
	switch k {
	case boldToken:
		return Bold
	case italicToken:
		return Italic
	case strikethroughToken:
		return Strikethrough
	case spoilerToken:
		return Spoiler
	default:
		return 0
	}
}

// An inlineLexer splits a paragraph or heading's content into tokens.
type inlineLexer struct {
	line   *line
	lt, gt string
}

func newInlineLexer(s string, cfg *Config) *inlineLexer {
	return &inlineLexer{
		line: newLine([]rune(s)),
		lt:   cfg.lt(),
		gt:   cfg.gt(),
	}
}

// next returns the next token or false if the input is exhausted.
// Characters that do not begin a delimiter accumulate into a text token,
// which ends just before the next delimiter.
func (lx *inlineLexer) next() (token, bool) {
	textStart := -1
	for !lx.line.eol() {
		for _, rule := range tokenRules {
			cp := lx.line.save()
			tok, ok := rule(lx)
			if !ok {
				lx.line.restore(cp)
				continue
			}
			if textStart >= 0 {
				lx.line.restore(cp)
				return lx.textToken(textStart), true
			}
			lx.line.commit(cp)
			return tok, true
		}
		if textStart < 0 {
			textStart = lx.line.pos()
		}
		lx.line.consumeAny(1, 1)
	}
	if textStart < 0 {
		return token{}, false
	}
	return lx.textToken(textStart), true
}

func (lx *inlineLexer) textToken(start int) token {
	return token{
		kind: textToken,
		s:    lx.line.slice(start, lx.line.pos()),
	}
}

// tokenRules are tried in order at each position.
var tokenRules = []func(lx *inlineLexer) (token, bool){
	lexBacktickString,
	delimiterRun(boldToken, '*', 2),
	delimiterRun(italicToken, '_', 2),
	delimiterRun(strikethroughToken, '~', 2),
	delimiterRun(spoilerToken, '|', 2),
	delimiterRun(italicToken, '*', 1),
	literalDelimiter(linkBoundaryToken, "[", openerFlag),
	literalDelimiter(linkBoundaryToken, ")", closerFlag),
	literalDelimiter(linkMiddleToken, "](", 0),
	func(lx *inlineLexer) (token, bool) {
		return literalDelimiter(angleBracketToken, lx.lt, openerFlag)(lx)
	},
	func(lx *inlineLexer) (token, bool) {
		return literalDelimiter(angleBracketToken, lx.gt, closerFlag)(lx)
	},
}

// lexBacktickString lexes a [backtick string],
// which can both open and close a code span.
//
// [backtick string]: https://spec.commonmark.org/0.31.2/#backtick-string
func lexBacktickString(lx *inlineLexer) (token, bool) {
	n, ok := lx.line.consume('`', 1, unbounded)
	if !ok {
		return token{}, false
	}
	return token{
		kind:  backtickToken,
		s:     strings.Repeat("`", n),
		flags: openerFlag | closerFlag,
	}, true
}

// delimiterRun returns a rule that lexes exactly n repetitions of c.
// Whether the run can open or close a span
// depends on the characters on either side of it.
func delimiterRun(kind tokenKind, c rune, n int) func(*inlineLexer) (token, bool) {
	return func(lx *inlineLexer) (token, bool) {
		var flags uint8
		if lx.line.leftFlanking() {
			flags |= openerFlag
		}
		if _, ok := lx.line.consume(c, n, n); !ok {
			return token{}, false
		}
		if lx.line.rightFlanking() {
			flags |= closerFlag
		}
		return token{
			kind:  kind,
			s:     strings.Repeat(string(c), n),
			flags: flags,
		}, true
	}
}

func literalDelimiter(kind tokenKind, s string, flags uint8) func(*inlineLexer) (token, bool) {
	return func(lx *inlineLexer) (token, bool) {
		if !lx.line.consumeString(s) {
			return token{}, false
		}
		return token{kind: kind, s: s, flags: flags}, true
	}
}
