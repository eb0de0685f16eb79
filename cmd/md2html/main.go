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

// Md2html converts Markdown to HTML.
//
// Usage:
//
//	md2html [flags] [file...]
//
// Md2html reads the named files, or else standard input, as Markdown documents
// and then prints the corresponding HTML to standard output.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"
	"zombiezen.com/go/mdast"
	"zombiezen.com/go/mdast/format"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("md2html: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	renderer     string
	spoilerAttr  string
	escapedGtLt  bool
	brNewlines   bool
	noHeaders    bool
	disableLinks bool
	format       bool
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fset := pflag.NewFlagSet("md2html", pflag.ContinueOnError)
	opts := new(options)
	fset.StringVar(&opts.renderer, "renderer", "html", "output `format`: html or tag")
	fset.StringVar(&opts.spoilerAttr, "spoiler-attr", "", "attribute text added to spoiler tags by the tag renderer")
	fset.BoolVar(&opts.escapedGtLt, "escaped-gt-lt", false, "recognize &gt; and &lt; in place of angle brackets")
	fset.BoolVar(&opts.brNewlines, "br-newlines", false, "convert <br> tags to line breaks before parsing")
	fset.BoolVar(&opts.noHeaders, "no-headers", false, "treat heading lines as paragraphs")
	fset.BoolVar(&opts.disableLinks, "disable-links", false, "render links as their text")
	fset.BoolVar(&opts.format, "format", false, "print formatted Markdown instead of rendering")
	if err := fset.Parse(args); err != nil {
		return err
	}
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	if fset.NArg() == 0 {
		return convert(stdout, stdin, cfg, opts.format)
	}
	for _, arg := range fset.Args() {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		err = convert(stdout, f, cfg, opts.format)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
	}
	return nil
}

func (opts *options) config() (*mdast.Config, error) {
	cfg := mdast.DefaultConfig()
	switch opts.renderer {
	case "html":
		cfg.Renderer = new(mdast.HTMLRenderer)
	case "tag":
		cfg.Renderer = new(mdast.TagRenderer)
	default:
		return nil, fmt.Errorf("unknown renderer %q", opts.renderer)
	}
	cfg.SpoilerSpanAttr = opts.spoilerAttr
	cfg.EscapedGtLt = opts.escapedGtLt
	cfg.ConvertBrToNewlines = opts.brNewlines
	cfg.EnableHeaders = !opts.noHeaders
	cfg.DisableLinks = opts.disableLinks
	return cfg, nil
}

func convert(dst io.Writer, src io.Reader, cfg *mdast.Config, formatOutput bool) error {
	doc, err := mdast.ParseReader(src, cfg)
	if err != nil {
		return err
	}
	if formatOutput {
		buf := new(bytes.Buffer)
		if err := format.Format(buf, doc); err != nil {
			return err
		}
		_, err := dst.Write(buf.Bytes())
		return err
	}
	return mdast.RenderTo(dst, cfg.Renderer, doc.Root)
}
