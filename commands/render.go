package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/render"
)

// newRenderCmd builds the render command.
func newRenderCmd(app *App) *cobra.Command {
	var (
		formatFlag string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Serialize the catalog to a document format",
		Long: `Render the loaded catalog as a catalog document. Rendered output is
re-parseable: feeding it back through the loader yields the same entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formatFlag
			if name == "" {
				name = app.Config.Render.Format
			}
			format, err := render.ParseFormat(name)
			if err != nil {
				return err
			}

			c, err := app.loadCatalog()
			if err != nil {
				return err
			}

			out, err := render.Render(c, format, app.Config.Catalog.Title)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			app.Logger.Info("Catalog rendered",
				"format", format,
				"path", outPath,
				"entries", c.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (markdown, json)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")

	return cmd
}
