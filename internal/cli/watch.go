package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vdobler/xyplot/internal/logging"
)

type watchOptions struct {
	output string
}

func (a *App) newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [flags] CHART",
		Short: "Re-render a chart file whenever it changes",
		Long: `Render CHART to the output file and render it again each time
CHART is written. Rendering errors are logged and watching continues.
Stop with Ctrl-C.

Example:
  xyplot watch -o bars.svg bars.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				return fmt.Errorf("output file is required (-o flag)")
			}
			return a.watch(cmd.Context(), args[0], opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file")

	return cmd
}

func (a *App) watch(ctx context.Context, path, output string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := a.render(abs, output); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch
	// the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logging.Info().Add(logging.File(abs)).Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := a.render(abs, output); err != nil {
				logging.Error().Add(logging.File(abs)).Add(logging.ErrorField(err)).Msg("render failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Add(logging.ErrorField(err)).Msg("watch error")
		}
	}
}
