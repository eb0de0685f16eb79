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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		config func(cfg *Config)
		want   []string
	}{
		{
			name:  "Empty",
			input: "",
			want:  []string{"document"},
		},
		{
			name:  "AllBlocks",
			input: "# a #\nb\n\n> c\nd\n\n```go\nx\n```\n    y\n",
			want: []string{
				"document",
				"  atx_heading (level=1)",
				`    raw "a"`,
				"  paragraph",
				`    raw "b"`,
				"  block_quote",
				"    paragraph",
				`      raw "c"`,
				`      raw "d"`,
				"  fenced_code_block (fence=\"```\" indent=0 info=\"go\")",
				`    text "x\n"`,
				"  indented_code_block",
				`    text "y\n"`,
			},
		},
		{
			name:  "HeadingClosingSequences",
			input: "## b ##   \n#\tc\n#c\n### #\n",
			want: []string{
				"document",
				"  atx_heading (level=2)",
				`    raw "b"`,
				"  atx_heading (level=1)",
				`    raw "c"`,
				"  paragraph",
				`    raw "#c"`,
				"  atx_heading (level=3)",
			},
		},
		{
			name:   "HeadersDisabled",
			input:  "# a\n",
			config: func(cfg *Config) { cfg.EnableHeaders = false },
			want: []string{
				"document",
				"  paragraph",
				`    raw "# a"`,
			},
		},
		{
			name:   "EscapedBlockQuote",
			input:  "&gt; a\n> b\n",
			config: func(cfg *Config) { cfg.EscapedGtLt = true },
			want: []string{
				"document",
				"  block_quote",
				"    paragraph",
				`      raw "a"`,
				`      raw "> b"`,
			},
		},
		{
			name:   "ConvertBr",
			input:  "a<br>b<br class=\"x\">c",
			config: func(cfg *Config) { cfg.ConvertBrToNewlines = true },
			want: []string{
				"document",
				"  paragraph",
				`    raw "a"`,
				`    raw "b"`,
				`    raw "c"`,
			},
		},
		{
			name:  "LazyLineEndsFence",
			input: "> ```\nb\n",
			want: []string{
				"document",
				"  block_quote",
				"    fenced_code_block (fence=\"```\" indent=0 info=\"\")",
				"  paragraph",
				`    raw "b"`,
			},
		},
		{
			name:  "FenceIndent",
			input: " ~~~~ x \n  a\n ~~~~~\n",
			want: []string{
				"document",
				`  fenced_code_block (fence="~~~~" indent=1 info="x")`,
				`    text " a\n"`,
			},
		},
		{
			name:  "ShorterFenceDoesNotClose",
			input: "```\na\n``\n```\n~~~~\n~~~\n~~~~\n",
			want: []string{
				"document",
				"  fenced_code_block (fence=\"```\" indent=0 info=\"\")",
				`    text "a\n"`,
				"    text \"``\\n\"",
				`  fenced_code_block (fence="~~~~" indent=0 info="")`,
				`    text "~~~\n"`,
			},
		},
		{
			name:  "BacktickInInfo",
			input: "``` a`b\n",
			want: []string{
				"document",
				"  paragraph",
				"    raw \"``` a`b\"",
			},
		},
		{
			name:  "BlankLinesInIndentedCode",
			input: "    a\n  \n\n    b\n\n",
			want: []string{
				"document",
				"  indented_code_block",
				`    text "a\n"`,
				`    text "\n"`,
				`    text "\n"`,
				`    text "b\n"`,
			},
		},
		{
			name:  "BlankLineDoesNotOpenIndentedCode",
			input: "> a\n>\n>     \n",
			want: []string{
				"document",
				"  block_quote",
				"    paragraph",
				`      raw "a"`,
			},
		},
		{
			name:  "IndentedCodeInBlockQuote",
			input: ">     a\n>\n>     b\n",
			want: []string{
				"document",
				"  block_quote",
				"    indented_code_block",
				`      text "a\n"`,
				`      text "\n"`,
				`      text "b\n"`,
			},
		},
		{
			name:  "BlockQuotesDoNotNest",
			input: "> > a\n> b\n",
			want: []string{
				"document",
				"  block_quote",
				"    paragraph",
				`      raw "> a"`,
				`      raw "b"`,
			},
		},
		{
			name:  "HeadingInterruptsLazyParagraph",
			input: "> a\n# b\n",
			want: []string{
				"document",
				"  block_quote",
				"    paragraph",
				`      raw "a"`,
				"  atx_heading (level=1)",
				`    raw "b"`,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if test.config != nil {
				test.config(cfg)
			}
			doc := ParseBlocks(test.input, cfg)
			want := strings.Join(test.want, "\n") + "\n"
			if diff := cmp.Diff(want, doc.Dump()); diff != "" {
				t.Errorf("ParseBlocks(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}
