package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

func newTokensCmd() *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of an Oxiby file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			lx := parser.NewLexer(src, name)
			for {
				tok := lx.NextToken()
				if !trivia && (tok.Kind == parser.TokenWhitespace || tok.Kind == parser.TokenComment) {
					continue
				}
				if tok.Kind == parser.TokenError {
					invalid++
				}
				fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Span.Start.Line, tok.Span.Start.Column, tok.Kind, tok.Literal)
				if tok.Kind == parser.TokenEOF {
					break
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%s: %d invalid tokens", name, invalid)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace and comments")

	return cmd
}
