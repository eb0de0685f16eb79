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

// Package normhtml provides functions for comparing and checking
// rendered Markdown output.
// [NormalizeHTML] ignores insignificant output differences,
// based on the [CommonMark spec test normalization].
//
// [CommonMark spec test normalization]: https://github.com/commonmark/commonmark-spec/blob/0.30.0/test/normalize.py
package normhtml

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML strips insignificant output differences from HTML.
func NormalizeHTML(b []byte) []byte {
	type htmlAttribute struct {
		key   string
		value string
	}

	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	last := html.StartTagToken
	var lastTag atom.Atom
	inPre := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return output
		case html.TextToken:
			data := tok.Text()
			afterTag := last == html.EndTagToken || last == html.StartTagToken
			afterBlockTag := afterTag && isBlockTag(lastTag)
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
			}
			if afterBlockTag && !inPre {
				if last == html.StartTagToken {
					data = bytes.TrimLeftFunc(data, unicode.IsSpace)
				} else if last == html.EndTagToken {
					data = bytes.TrimSpace(data)
				}
			}
			output = append(output, htmlEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			tagBytes, _ := tok.TagName()
			tag := atom.Lookup(tagBytes)
			if tag == atom.Pre {
				inPre = false
			} else if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = append(output, tagBytes...)
			output = append(output, ">"...)
			lastTag = tag
		case html.StartTagToken, html.SelfClosingTagToken:
			tagBytes, hasAttr := tok.TagName()
			tag := atom.Lookup(tagBytes)
			if tag == atom.Pre {
				inPre = true
			}
			if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "<"...)
			output = append(output, tagBytes...)
			if hasAttr {
				var attrs []htmlAttribute
				for {
					k, v, more := tok.TagAttr()
					attrs = append(attrs, htmlAttribute{string(k), string(v)})
					if !more {
						break
					}
				}
				sort.Slice(attrs, func(i, j int) bool {
					return attrs[i].key < attrs[j].key
				})
				for _, attr := range attrs {
					output = append(output, " "...)
					output = append(output, attr.key...)
					if attr.value != "" {
						output = append(output, `="`...)
						output = append(output, html.EscapeString(attr.value)...)
						output = append(output, `"`...)
					}
				}
			}
			output = append(output, ">"...)
			lastTag = tag
		}

		last = tt
		if tt == html.SelfClosingTagToken {
			last = html.EndTagToken
		}
	}
}

// isBlockTag reports whether tag is one of the block-level elements
// that a Markdown renderer emits.
func isBlockTag(tag atom.Atom) bool {
	switch tag {
	case atom.Blockquote, atom.P, atom.Pre, atom.Hr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

// voidTags are elements that have no end tag.
var voidTags = map[atom.Atom]struct{}{
	atom.Hr: {},
	atom.Br: {},
}

// CheckElements reports an error if b contains an element
// whose tag is not in allowed,
// an end tag that does not match the innermost open element,
// or an element that is never closed.
func CheckElements(b []byte, allowed ...atom.Atom) error {
	allowedSet := make(map[atom.Atom]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var open []atom.Atom
	for {
		switch tok.Next() {
		case html.ErrorToken:
			if len(open) > 0 {
				return fmt.Errorf("unclosed <%v>", open[len(open)-1])
			}
			return nil
		case html.StartTagToken:
			tagBytes, _ := tok.TagName()
			tag := atom.Lookup(tagBytes)
			if _, ok := allowedSet[tag]; !ok {
				return fmt.Errorf("unexpected element <%s>", tagBytes)
			}
			if _, void := voidTags[tag]; !void {
				open = append(open, tag)
			}
		case html.SelfClosingTagToken:
			tagBytes, _ := tok.TagName()
			if _, ok := allowedSet[atom.Lookup(tagBytes)]; !ok {
				return fmt.Errorf("unexpected element <%s/>", tagBytes)
			}
		case html.EndTagToken:
			tagBytes, _ := tok.TagName()
			tag := atom.Lookup(tagBytes)
			if len(open) == 0 || open[len(open)-1] != tag {
				return fmt.Errorf("unexpected </%s>", tagBytes)
			}
			open = open[:len(open)-1]
		}
	}
}
