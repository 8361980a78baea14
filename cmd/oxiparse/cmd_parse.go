package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/oxiparse/format"
	"github.com/dhamidi/oxiparse/oxiby/parser"
)

var entries = map[string]func(io.Reader, ...parser.Option) *parser.Parser{
	"item":       parser.ParseItem,
	"expression": parser.ParseExpression,
	"type":       parser.ParseType,
	"pattern":    parser.ParsePattern,
}

func newParseCmd() *cobra.Command {
	var flags parseFlags
	var outputFormat string
	var entry string
	var positions bool
	var color bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an Oxiby file and print its syntax tree",
		Long: `Parse an Oxiby file and print its syntax tree.

Without a file, or with "-", the source is read from standard input.
--entry parses a single item, expression, type or pattern instead of a
whole file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := flags.load(cmd.Flags(), inputDir(name))
			if err != nil {
				return err
			}
			enc, err := format.NewTreeEncoder(outputFormat, cmd.OutOrStdout(), positions)
			if err != nil {
				return err
			}

			opts := append(cfg.ParserOptions(), parser.WithFile(name))
			tree, parseErr := parseEntry(entry, src, opts...)
			if tree != nil {
				tree.File = name
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if parseErr == nil {
				return nil
			}

			errs := parser.AsErrors(parseErr)
			if len(errs) == 0 {
				return parseErr
			}
			if err := format.NewDiagnosticRenderer(cmd.ErrOrStderr(), color).RenderAll(src, errs); err != nil {
				return err
			}
			return fmt.Errorf("%s: %d syntax errors", name, len(errs))
		},
	}

	flags.register(cmd.Flags())
	addColorFlag(cmd.Flags(), &color)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexp", "output format ("+strings.Join(format.Formats, ", ")+")")
	cmd.Flags().StringVarP(&entry, "entry", "e", "source", "grammar rule to parse: source, item, expression, type or pattern")
	cmd.Flags().BoolVar(&positions, "positions", false, "include positions in text output")

	return cmd
}

func parseEntry(entry string, src []byte, opts ...parser.Option) (*parser.Tree, error) {
	if entry == "" || entry == "source" {
		return parser.Parse(src, opts...)
	}
	newParser, ok := entries[entry]
	if !ok {
		return nil, fmt.Errorf("unknown entry %q", entry)
	}
	p := newParser(bytes.NewReader(src), opts...)
	node, err := p.Finish()
	if node == nil {
		return nil, err
	}
	return &parser.Tree{
		Root:     node,
		Source:   src,
		Comments: p.Comments(),
		Errors:   parser.AsErrors(err),
	}, err
}
