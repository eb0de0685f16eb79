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

import "go4.org/bytereplacer"

// htmlEscaper replaces the HTML special characters
// and the Latin-1 punctuation and symbols from U+00A1 to U+00AF
// with named character references.
var htmlEscaper = bytereplacer.New(
	`"`, "&quot;",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a1", "&iexcl;",
	"\u00a2", "&cent;",
	"\u00a3", "&pound;",
	"\u00a4", "&curren;",
	"\u00a5", "&yen;",
	"\u00a6", "&brvbar;",
	"\u00a7", "&sect;",
	"\u00a8", "&uml;",
	"\u00a9", "&copy;",
	"\u00aa", "&ordf;",
	"\u00ab", "&laquo;",
	"\u00ac", "&not;",
	"\u00ad", "&shy;",
	"\u00ae", "&reg;",
	"\u00af", "&macr;",
)

// escapeHTML appends the escaped form of src to dst.
func escapeHTML(dst []byte, src string) []byte {
	// Replace may modify its argument in place, so pass a copy.
	return append(dst, htmlEscaper.Replace([]byte(src))...)
}
