package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/render"
	"github.com/c360studio/patternbook/vocabulary/pattern"
)

// newShowCmd builds the show command.
func newShowCmd(app *App) *cobra.Command {
	var (
		categoryFlag string
		related      bool
	)

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one catalog entry",
		Long: `Show the full entry for a pattern: definition, explanation, and the
example snippet. Lookup is case-insensitive and accepts slugs
(chain-of-responsibility).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.loadCatalog()
			if err != nil {
				return err
			}

			name := args[0]
			var entry catalog.Entry
			var ok bool
			if categoryFlag != "" {
				cat, valid := pattern.ParseCategory(categoryFlag)
				if !valid {
					return fmt.Errorf("unknown category: %q", categoryFlag)
				}
				entry, ok = c.LookupIn(cat, name)
			} else {
				entry, ok = c.Lookup(name)
			}

			if !ok {
				msg := fmt.Sprintf("pattern not found: %q", name)
				if suggestions := suggest(c, name); len(suggestions) > 0 {
					msg += "\n\nDid you mean:\n"
					for _, s := range suggestions {
						msg += fmt.Sprintf("  %s (%s)\n", s.Name, s.Category)
					}
				} else {
					msg += "\n\nRun `patternbook list` to see available patterns."
				}
				return fmt.Errorf("%s", msg)
			}

			w := render.NewMarkdownWriter()
			w.WriteEntry(entry)
			fmt.Fprint(cmd.OutOrStdout(), w.String())

			if related {
				if names := pattern.RelatedPatterns[entry.Name]; len(names) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Related: %s\n", strings.Join(names, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Disambiguate by category (behavioral, creational)")
	cmd.Flags().BoolVar(&related, "related", false, "Print related patterns")

	return cmd
}

// suggest returns entries whose names contain the query as a substring.
func suggest(c *catalog.Catalog, query string) []catalog.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []catalog.Entry
	for _, e := range c.Entries() {
		if strings.Contains(strings.ToLower(e.Name), query) || strings.Contains(e.Slug, query) {
			matches = append(matches, e)
		}
	}
	return matches
}
