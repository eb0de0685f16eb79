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

// An InlineParser converts [RawKind] nodes into inline trees.
// The zero value parses with [DefaultConfig].
type InlineParser struct {
	// Config controls escaped angle brackets and spoiler attributes.
	// If nil, [DefaultConfig] is used.
	Config *Config
}

// Rewrite replaces every run of consecutive [RawKind] nodes in doc
// with the parsed inline content of the lines joined by "\n".
func (p *InlineParser) Rewrite(doc *Document) {
	p.rewrite(p.Config.orDefault(), doc.Root)
}

func (p *InlineParser) rewrite(cfg *Config, n *Node) {
	var children []*Node
	var raw []string
	flush := func() {
		if len(raw) > 0 {
			children = append(children, p.parse(cfg, strings.Join(raw, "\n"))...)
			raw = raw[:0]
		}
	}
	hasRaw := false
	for _, c := range n.children {
		if c.kind == RawKind {
			raw = append(raw, c.text)
			hasRaw = true
			continue
		}
		flush()
		if c.kind.IsBlock() {
			p.rewrite(cfg, c)
		}
		children = append(children, c)
	}
	flush()
	if hasRaw {
		n.replaceChildren(children)
	}
}

// A stackItem is an element of the inline parse stack:
// either an unmatched token or a completed node.
type stackItem struct {
	tok  *token
	node *Node
}

// asNode converts the item into a node,
// turning unmatched tokens into literal text.
func (item stackItem) asNode() *Node {
	if item.node != nil {
		return item.node
	}
	return newText(item.tok.s)
}

type inlineState struct {
	cfg    *Config
	lexer  *inlineLexer
	stack  []stackItem
	lt, gt string
}

func (p *InlineParser) parse(cfg *Config, s string) []*Node {
	state := &inlineState{
		cfg:   cfg,
		lexer: newInlineLexer(s, cfg),
		lt:    cfg.lt(),
		gt:    cfg.gt(),
	}
	for {
		tok, ok := state.lexer.next()
		if !ok {
			break
		}
		if tok.canClose() && state.reduce(&tok) {
			continue
		}
		state.stack = append(state.stack, stackItem{tok: &tok})
	}
	return state.resolveForward()
}

// reduce attempts to match closer against an unmatched opener on the stack,
// scanning from the top down.
// The scan stops at any unmatched token with higher precedence than closer.
// On success, the opener and everything above it
// are replaced by the resulting node.
func (state *inlineState) reduce(closer *token) bool {
	prec := closer.kind.precedence()
	for i := len(state.stack) - 1; i >= 0; i-- {
		opener := state.stack[i].tok
		if opener == nil {
			continue
		}
		if opener.kind.precedence() > prec {
			return false
		}
		if !delimitersMatch(opener, closer) {
			continue
		}
		if n := state.build(opener, state.stack[i+1:]); n != nil {
			clear(state.stack[i+1:])
			state.stack[i] = stackItem{node: n}
			state.stack = state.stack[:i+1]
			return true
		}
	}
	return false
}

// resolveForward makes a second pass over the stack,
// matching each remaining opener with the first compatible closer after it.
// Anything still unmatched becomes literal text.
func (state *inlineState) resolveForward() []*Node {
	stack := state.stack
	result := make([]*Node, 0, len(stack))
	for i := 0; i < len(stack); i++ {
		if opener := stack[i].tok; opener != nil && opener.canOpen() {
			for j := i + 1; j < len(stack); j++ {
				closer := stack[j].tok
				if closer == nil || !delimitersMatch(opener, closer) {
					continue
				}
				if n := state.build(opener, stack[i+1:j]); n != nil {
					stack[i] = stackItem{node: n}
					stack = append(stack[:i+1], stack[j+1:]...)
					break
				}
			}
		}
		result = append(result, stack[i].asNode())
	}
	return result
}

// delimitersMatch reports whether opener and closer can delimit a span.
// Emphasis and code delimiters must be identical.
func delimitersMatch(opener, closer *token) bool {
	if opener.kind != closer.kind || !opener.canOpen() || !closer.canClose() {
		return false
	}
	switch opener.kind {
	case linkBoundaryToken, angleBracketToken:
		return true
	default:
		return opener.s == closer.s
	}
}

// build creates the node opened by opener around content.
// It returns nil if the content is not valid for the construct.
func (state *inlineState) build(opener *token, content []stackItem) *Node {
	var n *Node
	switch opener.kind {
	case backtickToken:
		n = &Node{kind: CodeSpanKind, backticks: len(opener.s)}
		for _, item := range content {
			n.appendChild(item.asNode())
		}
	case boldToken, italicToken, strikethroughToken, spoilerToken:
		n = &Node{kind: EmphasisKind, emphasis: opener.kind.emphasisType()}
		if n.emphasis == Spoiler {
			n.attr = state.cfg.SpoilerSpanAttr
		}
		for _, item := range content {
			n.appendChild(item.asNode())
		}
	case linkBoundaryToken:
		n = state.buildLink(content)
	case angleBracketToken:
		n = buildAutolink(content)
	}
	if n != nil {
		n.finalize()
	}
	return n
}

// autolinkPattern matches the destination of an [autolink].
//
// [autolink]: https://spec.commonmark.org/0.31.2/#autolinks
var autolinkPattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]{1,31}:[^ <>]*$`)

func buildAutolink(content []stackItem) *Node {
	sb := new(strings.Builder)
	for _, item := range content {
		switch {
		case item.tok != nil:
			sb.WriteString(item.tok.s)
		case item.node.kind == TextKind:
			sb.WriteString(item.node.text)
		default:
			return nil
		}
	}
	dest := sb.String()
	if !autolinkPattern.MatchString(dest) {
		return nil
	}
	n := &Node{kind: LinkKind, link: Autolink, destination: dest}
	n.appendChild(newText(dest))
	return n
}

// buildLink validates the content between '[' and ')'
// as link text, "](", and a [link destination].
//
// [link destination]: https://spec.commonmark.org/0.31.2/#link-destination
func (state *inlineState) buildLink(content []stackItem) *Node {
	var text []*Node
	dest := new(strings.Builder)
	inDest := false
	autolinked := false
	depth := 0
	unbalanced := false
	for _, item := range content {
		if item.tok != nil && item.tok.kind == linkMiddleToken {
			// The first "](" separates text from destination.
			// Later ones are dropped from the destination.
			inDest = true
			continue
		}
		if !inDest {
			if item.node != nil && item.node.kind == LinkKind {
				// Links may not contain other links.
				return nil
			}
			text = append(text, item.asNode())
			continue
		}

		var s string
		switch {
		case item.tok != nil:
			s = item.tok.s
		case item.node.kind == TextKind:
			s = item.node.text
		case item.node.kind == LinkKind && item.node.link == Autolink && !autolinked:
			s = item.node.destination
			autolinked = true
		default:
			return nil
		}
		if strings.Contains(s, "\n") {
			return nil
		}
		for _, c := range s {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
				if depth < 0 {
					unbalanced = true
				}
			}
		}
		dest.WriteString(s)
	}
	if !inDest {
		return nil
	}

	d := dest.String()
	pointy := autolinked
	if !pointy && strings.HasPrefix(d, state.lt) {
		if len(d) < len(state.lt)+len(state.gt) ||
			strings.Index(d, state.gt) != len(d)-len(state.gt) {
			return nil
		}
		d = d[len(state.lt) : len(d)-len(state.gt)]
		pointy = true
	}
	if !pointy && (strings.Contains(d, " ") || unbalanced || depth != 0) {
		return nil
	}

	n := &Node{kind: LinkKind, link: NormalLink, destination: d}
	n.appendChildren(text)
	return n
}
