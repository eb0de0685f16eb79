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
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// lines splits input into [lines] by [line ending].
// It is forward-only.
//
// [lines]: https://spec.commonmark.org/0.31.2/#line
// [line ending]: https://spec.commonmark.org/0.31.2/#line-ending
type lines struct {
	input []rune
	pos   int
}

func newLines(input string) *lines {
	return &lines{input: []rune(normalizeInput(input))}
}

// normalizeInput replaces U+0000 and ill-formed UTF-8 sequences
// with the Unicode replacement character, for security reasons.
func normalizeInput(input string) string {
	t := runes.Map(func(r rune) rune {
		if r == 0 {
			return '\uFFFD'
		}
		return r
	})
	s, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return s
}

// eof reports whether every line has been returned by next.
func (ls *lines) eof() bool {
	return ls.pos >= len(ls.input)
}

// next returns the next line with its line ending stripped.
func (ls *lines) next() *line {
	start := ls.pos
	eolLen := 0
	for ls.pos < len(ls.input) {
		switch c := ls.input[ls.pos]; {
		case isLF(c):
			eolLen = 1
		case isCR(c) && ls.pos+1 < len(ls.input) && isLF(ls.input[ls.pos+1]):
			eolLen = 2
		case isCR(c):
			eolLen = 1
		}
		if eolLen > 0 {
			ls.pos += eolLen
			break
		}
		ls.pos++
	}
	return newLine(ls.input[start : ls.pos-eolLen])
}
