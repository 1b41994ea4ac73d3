package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvitoroc/filterql/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [filter]",
		Short: "Parse a filter and print its expression tree",
		Long: `Parse a filter and print its expression tree.

The filter is read from the arguments, or from stdin when none are given.
Formats: tree (indented), text (canonical filter), json, yaml. The default
comes from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readFilter(cmd, args)
			if err != nil {
				return err
			}

			f := format.Format(a.cfg.Output)
			if outputFormat != "" {
				if !format.IsFormat(outputFormat) {
					return fmt.Errorf("unknown format: %s", outputFormat)
				}
				f = format.Format(outputFormat)
			}

			tree, err := a.cfg.QueryLimits().ParseText(text)
			if err != nil {
				return err
			}

			return format.Write(cmd.OutOrStdout(), f, tree)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "", "output format (tree, text, json, yaml)")

	return cmd
}
