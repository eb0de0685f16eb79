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

import "unicode"

// isUnicodeWhitespace reports whether r is a [Unicode whitespace character].
//
// [Unicode whitespace character]: https://spec.commonmark.org/0.31.2/#unicode-whitespace-character
func isUnicodeWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r',
		'\u00a0', '\u1680', '\u202f', '\u205f', '\u3000':
		return true
	}
	return '\u2000' <= r && r <= '\u200a'
}

// isASCIIPunctuation reports whether r is an [ASCII punctuation character].
//
// [ASCII punctuation character]: https://spec.commonmark.org/0.31.2/#ascii-punctuation-character
func isASCIIPunctuation(r rune) bool {
	return '!' <= r && r <= '/' ||
		':' <= r && r <= '@' ||
		'[' <= r && r <= '`' ||
		'{' <= r && r <= '~'
}

// isUnicodePunctuation reports whether r is a [Unicode punctuation character].
// This includes symbols as well as punctuation.
//
// [Unicode punctuation character]: https://spec.commonmark.org/0.31.2/#unicode-punctuation-character
func isUnicodePunctuation(r rune) bool {
	if r < 0x80 {
		return isASCIIPunctuation(r)
	}
	return unicode.In(r, unicode.Punct, unicode.Symbol)
}

func isCR(r rune) bool { return r == '\r' }
func isLF(r rune) bool { return r == '\n' }

func isSpaceOrTab(r rune) bool { return r == ' ' || r == '\t' }

// isFlankingBoundary reports whether r, the character next to a delimiter run,
// lets the run open or close a span.
// noChar represents the beginning or end of the input.
func isFlankingBoundary(r rune) bool {
	return r == noChar || isUnicodeWhitespace(r) || isUnicodePunctuation(r)
}
