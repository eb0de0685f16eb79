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

// Package mdast provides a parser for a compact Markdown dialect
// intended for chat messages.
//
// The dialect supports paragraphs, block quotes, [ATX headings],
// indented and fenced code blocks, code spans, links, autolinks,
// and four kinds of emphasis:
// **bold**, __italic__ (or *italic*),
// ~~strikethrough~~, and ||spoiler||.
// Raw HTML is never passed through.
//
// Parsing happens in two phases.
// [ParseBlocks] builds the block structure of a document,
// leaving the content of paragraphs and headings as [RawKind] nodes.
// [*InlineParser.Rewrite] then replaces the raw lines with inline trees.
// [Parse] runs both phases and renders the result.
//
// [ATX headings]: https://spec.commonmark.org/0.31.2/#atx-headings
package mdast

import (
	"fmt"
	"io"
)

// Config is the set of options for parsing and rendering.
// A Config must not be modified while it is in use.
type Config struct {
	// Renderer converts a parsed document to text.
	// If nil, an [HTMLRenderer] is used.
	Renderer Renderer
	// If DisableLinks is true, links and autolinks
	// are replaced by their text content.
	DisableLinks bool
	// If EscapedGtLt is true, the input is assumed to be HTML-escaped
	// and "&gt;" and "&lt;" are recognized in place of '>' and '<'
	// for block quote markers, autolinks, and pointy link destinations.
	EscapedGtLt bool
	// SpoilerSpanAttr is written verbatim into the opening tag
	// of spoilers by [TagRenderer].
	// It should begin with a space, as in ` class="spoiler"`.
	SpoilerSpanAttr string
	// If ConvertBrToNewlines is true, <br> tags in the input
	// are replaced with line feeds before parsing.
	ConvertBrToNewlines bool
	// EnableHeaders controls whether ATX headings are recognized.
	// When false, heading lines are parsed as paragraphs.
	EnableHeaders bool
}

// DefaultConfig returns a new [Config] with the default options:
// an [HTMLRenderer] with headings enabled.
func DefaultConfig() *Config {
	return &Config{
		Renderer:      new(HTMLRenderer),
		EnableHeaders: true,
	}
}

func (cfg *Config) orDefault() *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}

func (cfg *Config) renderer() Renderer {
	if cfg.Renderer == nil {
		return new(HTMLRenderer)
	}
	return cfg.Renderer
}

func (cfg *Config) lt() string {
	if cfg.EscapedGtLt {
		return "&lt;"
	}
	return "<"
}

func (cfg *Config) gt() string {
	if cfg.EscapedGtLt {
		return "&gt;"
	}
	return ">"
}

// Parse parses the Markdown input and renders it
// with the configured [Renderer].
// A nil cfg is equivalent to [DefaultConfig].
func Parse(input string, cfg *Config) string {
	cfg = cfg.orDefault()
	return cfg.renderer().Render(ParseDocument(input, cfg).Root)
}

// ParseDocument parses the Markdown input into a [Document]
// without rendering it.
// A nil cfg is equivalent to [DefaultConfig].
func ParseDocument(input string, cfg *Config) *Document {
	cfg = cfg.orDefault()
	doc := ParseBlocks(input, cfg)
	(&InlineParser{Config: cfg}).Rewrite(doc)
	if cfg.DisableLinks {
		unlink(doc.Root)
	}
	return doc
}

// ParseReader reads all of r and parses it as a [Document].
func ParseReader(r io.Reader, cfg *Config) (*Document, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	return ParseDocument(string(input), cfg), nil
}

// unlink replaces every link under root with its children.
func unlink(root *Node) {
	Walk(root, &WalkOptions{
		Post: func(c *Cursor) bool {
			n := c.Node()
			hasLink := false
			for _, child := range n.children {
				if child.kind == LinkKind {
					hasLink = true
					break
				}
			}
			if !hasLink {
				return true
			}
			children := make([]*Node, 0, len(n.children))
			for _, child := range n.children {
				if child.kind == LinkKind {
					children = append(children, child.children...)
				} else {
					children = append(children, child)
				}
			}
			n.replaceChildren(children)
			return true
		},
	})
}
