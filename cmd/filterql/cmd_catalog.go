package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/jvitoroc/filterql/catalog"
	"github.com/jvitoroc/filterql/format"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage named filters",
	}

	cmd.AddCommand(newCatalogAddCmd(a))
	cmd.AddCommand(newCatalogListCmd(a))
	cmd.AddCommand(newCatalogShowCmd(a))
	cmd.AddCommand(newCatalogRmCmd(a))

	return cmd
}

func (a *app) openCatalog() (*catalog.Catalog, error) {
	if err := os.MkdirAll(a.cfg.Catalog.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	return catalog.Open(osfs.New(a.cfg.Catalog.Dir), a.lg, a.cfg.QueryLimits())
}

func newCatalogAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <filter>",
		Short: "Validate a filter and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}

			f, err := c.Add(args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), f.ID)
			return nil
		},
	}
}

func newCatalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range c.List() {
				fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Text)
			}

			return tw.Flush()
		},
	}
}

func newCatalogShowCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the expression tree of a stored filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}

			f := c.Get(args[0])
			if f == nil {
				return fmt.Errorf("%w: '%s'", catalog.ErrNotFound, args[0])
			}

			out := format.Format(a.cfg.Output)
			if outputFormat != "" {
				if !format.IsFormat(outputFormat) {
					return fmt.Errorf("unknown format: %s", outputFormat)
				}
				out = format.Format(outputFormat)
			}

			tree, err := f.Expression(a.cfg.QueryLimits())
			if err != nil {
				return fmt.Errorf("filter '%s': %w", f.Name, err)
			}

			return format.Write(cmd.OutOrStdout(), out, tree)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "", "output format (tree, text, json, yaml)")

	return cmd
}

func newCatalogRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCatalog()
			if err != nil {
				return err
			}

			return c.Remove(args[0])
		},
	}
}
