package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvitoroc/filterql/query"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check files of filters, one per line",
		Long: `Check files of filters. Each non-blank line is parsed as a separate
filter and every error is reported as file:line:col: message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, name := range args {
				f, err := os.Open(name)
				if err != nil {
					return err
				}

				n, err := a.check(cmd.OutOrStdout(), name, f)
				f.Close()
				if err != nil {
					return fmt.Errorf("read %s: %w", name, err)
				}
				invalid += n
			}

			if invalid > 0 {
				return fmt.Errorf("%d invalid filters", invalid)
			}

			return nil
		},
	}
}

// check parses each non-blank line of r, reports errors to w and returns the
// number of lines that failed.
func (a *app) check(w io.Writer, name string, r io.Reader) (int, error) {
	limits := a.cfg.QueryLimits()
	invalid := 0
	line := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		_, err := limits.ParseText(text)
		if err == nil {
			continue
		}
		invalid++

		var diags query.Diagnostics
		if errors.As(err, &diags) {
			for _, d := range diags {
				fmt.Fprintf(w, "%s:%d:%d: %s\n", name, line+d.Span.Start.Line, d.Span.Start.Column+1, d.Message)
			}
			continue
		}

		fmt.Fprintf(w, "%s:%d:%d: %s\n", name, line, 1, err)
	}

	a.lg.Debug("checked", "file", name, "lines", line, "invalid", invalid)
	return invalid, sc.Err()
}
