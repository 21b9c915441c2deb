package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// newListCmd builds the list command.
func newListCmd(app *App) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Long:  "List catalog entries in document order, optionally filtered by category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.loadCatalog()
			if err != nil {
				return err
			}

			var entries []catalog.Entry
			if categoryFlag != "" {
				cat, ok := pattern.ParseCategory(categoryFlag)
				if !ok {
					return fmt.Errorf("unknown category: %q", categoryFlag)
				}
				entries = c.ByCategory(cat)
			} else {
				entries = c.Entries()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDEFINITION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Category, firstLine(e.Definition, 72))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category (behavioral, creational)")

	return cmd
}

// firstLine returns the first line of s truncated to max runes.
func firstLine(s string, max int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
