package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvitoroc/filterql/query"
)

func newTokenizeCmd(a *app) *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "tokenize [filter]",
		Short: "Print the tokens of a filter",
		Long: `Print the tokens of a filter, one per line, with their spans.

The filter is read from the arguments, or from stdin when none are given.
Lexical errors are reported on stderr. With --bare, tokens are reduced to
their kind and errors appear inline as error markers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readFilter(cmd, args)
			if err != nil {
				return err
			}

			res := query.Lex(text)
			out := cmd.OutOrStdout()

			if bare {
				for _, bt := range res.Bare() {
					fmt.Fprintf(out, "%s-%s\t%s\n", bt.Span.Start, bt.Span.End, bt.Kind)
				}
			} else {
				for _, pt := range res.Tokens {
					fmt.Fprintf(out, "%s-%s\t%s\t%s\n", pt.Span.Start, pt.Span.End, query.KindOf(pt.Token), pt.Source)
				}
			}

			a.lg.Debug("tokenized", "tokens", len(res.Tokens), "errors", len(res.Diagnostics))
			return res.Err()
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "print only token kinds and spans, including error markers")

	return cmd
}
