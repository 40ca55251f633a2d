package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vdobler/xyplot/chartfile"
	"github.com/vdobler/xyplot/internal/logging"
)

type renderOptions struct {
	output string
}

func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [flags] CHART",
		Short: "Render a chart file to SVG",
		Long: `Render the chart described in the YAML file CHART to SVG.

Examples:
  # Write the SVG to stdout
  xyplot render bars.yaml

  # Write the SVG to a file
  xyplot render -o bars.svg bars.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(args[0], opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// render loads the chart in path and writes it to output, or to stdout
// if output is empty. The output file is only written if rendering
// succeeds.
func (a *App) render(path, output string) error {
	start := time.Now()
	chart, err := chartfile.LoadFile(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if output == "" {
		_, err = buf.WriteTo(a.stdout)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	logging.Info().
		Add(logging.File(output)).
		Add(logging.Count("bytes", buf.Len())).
		Add(logging.Duration(time.Since(start))).
		Msg("rendered")
	return nil
}
