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

import "math"

// noChar is returned when peeking past either end of a line.
const noChar rune = -1

// unbounded is used as the maximum count for consume operations
// that accept any number of characters.
const unbounded = math.MaxInt

type lineState struct {
	pos int // read position
	end int // read end position (exclusive)
}

// A line is a backtrackable cursor over the characters of a single line.
// Characters can be consumed from the front or from the back.
//
// Grammar rules call save before attempting a match
// and either commit the checkpoint on success
// or restore it on failure,
// so a failed rule never leaves partial consumption behind.
type line struct {
	chars  []rune
	states []lineState
}

func newLine(chars []rune) *line {
	return &line{
		chars:  chars,
		states: []lineState{{pos: 0, end: len(chars)}},
	}
}

func (l *line) state() *lineState {
	return &l.states[len(l.states)-1]
}

// eol reports whether all characters have been consumed.
func (l *line) eol() bool {
	s := l.state()
	return s.pos >= s.end
}

// pos returns the read position as an index into l.chars.
func (l *line) pos() int {
	return l.state().pos
}

// save pushes a checkpoint of the current state
// and returns a handle for restore or commit.
func (l *line) save() int {
	l.states = append(l.states, *l.state())
	return len(l.states) - 1
}

// restore discards all consumption since checkpoint n was saved,
// along with any later checkpoints.
func (l *line) restore(n int) {
	if n < 1 || n >= len(l.states) {
		panic("restore of unknown checkpoint")
	}
	l.states = l.states[:n]
}

// commit keeps all consumption since checkpoint n was saved
// and drops the checkpoint along with any later ones.
func (l *line) commit(n int) {
	if n < 1 || n >= len(l.states) {
		panic("commit of unknown checkpoint")
	}
	l.states[n-1] = *l.state()
	l.states = l.states[:n]
}

func (l *line) peek() rune {
	s := l.state()
	if s.pos >= s.end {
		return noChar
	}
	return l.chars[s.pos]
}

func (l *line) peekBack() rune {
	if i := l.state().pos; i > 0 {
		return l.chars[i-1]
	}
	return noChar
}

// consumeFunc consumes characters from the front of the line
// while f reports true, up to max characters.
// If fewer than min characters match, nothing is consumed and ok is false.
func (l *line) consumeFunc(f func(rune) bool, min, max int) (n int, ok bool) {
	s := l.state()
	for n < max && s.pos+n < s.end && f(l.chars[s.pos+n]) {
		n++
	}
	if n < min {
		return 0, false
	}
	s.pos += n
	return n, true
}

// consume consumes up to max repetitions of c from the front of the line.
func (l *line) consume(c rune, min, max int) (n int, ok bool) {
	return l.consumeFunc(func(r rune) bool { return r == c }, min, max)
}

// consumeTrailingFunc is the mirror of consumeFunc:
// it consumes characters from the back of the line.
func (l *line) consumeTrailingFunc(f func(rune) bool, min, max int) (n int, ok bool) {
	s := l.state()
	for n < max && s.end-n > s.pos && f(l.chars[s.end-n-1]) {
		n++
	}
	if n < min {
		return 0, false
	}
	s.end -= n
	return n, true
}

// consumeTrailing consumes up to max repetitions of c from the back of the line.
func (l *line) consumeTrailing(c rune, min, max int) (n int, ok bool) {
	return l.consumeTrailingFunc(func(r rune) bool { return r == c }, min, max)
}

// consumeString consumes the exact sequence s from the front of the line.
// It consumes nothing if the line does not start with s.
func (l *line) consumeString(s string) bool {
	st := l.state()
	i := st.pos
	for _, c := range s {
		if i >= st.end || l.chars[i] != c {
			return false
		}
		i++
	}
	st.pos = i
	return true
}

// consumeAny consumes between min and max characters of any kind.
func (l *line) consumeAny(min, max int) (string, bool) {
	s := l.state()
	n := s.end - s.pos
	if n > max {
		n = max
	}
	if n < min {
		return "", false
	}
	consumed := string(l.chars[s.pos : s.pos+n])
	s.pos += n
	return consumed, true
}

// consumeAll consumes and returns the rest of the line.
func (l *line) consumeAll() string {
	s := l.state()
	result := string(l.chars[s.pos:s.end])
	s.pos = s.end
	return result
}

// leftFlanking reports whether the character before the read position
// permits a delimiter run starting at the read position to open a span.
func (l *line) leftFlanking() bool {
	return isFlankingBoundary(l.peekBack())
}

// rightFlanking reports whether the character at the read position
// permits a delimiter run ending just before it to close a span.
func (l *line) rightFlanking() bool {
	return isFlankingBoundary(l.peek())
}

// blank reports whether the unconsumed characters are all spaces or tabs
// (or line endings, if allowNewline is true).
func (l *line) blank(allowNewline bool) bool {
	s := l.state()
	for _, c := range l.chars[s.pos:s.end] {
		if isSpaceOrTab(c) || allowNewline && (isCR(c) || isLF(c)) {
			continue
		}
		return false
	}
	return true
}

// slice returns the characters between the absolute positions i and j.
func (l *line) slice(i, j int) string {
	return string(l.chars[i:j])
}
