package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/loader"
)

// newWatchCmd builds the watch command.
func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch catalog documents and reload on change",
		Long: `Watch the configured document roots and rebuild the catalog when a
document changes. Each successful rebuild swaps in a fresh catalog value;
a rebuild that fails leaves the previous catalog in place. Runs until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Config.Catalog.Paths) == 0 {
				return fmt.Errorf("nothing to watch: no catalog document paths configured")
			}

			w, err := loader.NewWatcher(app.loaderOptions(), app.Config.Watch)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := w.Start(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "watching %d entries; press Ctrl-C to stop\n",
				w.Catalog().Len())

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-w.Events():
					if !ok {
						return nil
					}
					if ev.Err != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "reload failed (%s): %v\n", ev.Path, ev.Err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "reloaded: %s (%d entries)\n",
						ev.Path, w.Catalog().Len())
				}
			}
		},
	}
}
