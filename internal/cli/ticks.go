package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vdobler/xyplot"
)

type ticksOptions struct {
	scaleType string
	min, max  float64
	size      float64
	total     int
}

func (a *App) newTicksCmd() *cobra.Command {
	opts := &ticksOptions{}

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the ticks of a continuous scale",
		Long: `Print the ticks generated for a scale over [min, max] mapped to
[0, size] pixels. Time scales take min and max as milliseconds since
the Unix epoch.

Examples:
  xyplot ticks --min 0 --max 97 --size 400
  xyplot ticks --type log --min 1 --max 1e6 --total 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ticks(opts)
		},
	}

	cmd.Flags().StringVar(&opts.scaleType, "type", "linear", "Scale type (linear, log, time, time-utc)")
	cmd.Flags().Float64Var(&opts.min, "min", 0, "Domain minimum")
	cmd.Flags().Float64Var(&opts.max, "max", 1, "Domain maximum")
	cmd.Flags().Float64Var(&opts.size, "size", 400, "Range size in pixels")
	cmd.Flags().IntVar(&opts.total, "total", 0, "Maximum number of ticks (default derived from size)")

	return cmd
}

func (a *App) ticks(opts *ticksOptions) error {
	t, err := xyplot.ParseScaleType(opts.scaleType)
	if err != nil {
		return err
	}
	if t.IsDiscrete() || t == xyplot.LiteralScale {
		return fmt.Errorf("ticks needs a continuous scale, not %s", t)
	}
	s, err := xyplot.NewScale(t, xyplot.Domain{Min: opts.min, Max: opts.max}, 0, opts.size)
	if err != nil {
		return err
	}
	total := opts.total
	if total <= 0 {
		total = xyplot.TicksTotalFromSize(opts.size)
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
	for tk := range s.Ticks(total) {
		fmt.Fprintf(tw, "%s\t%.2f\t\n", tk.Label, tk.Pos)
	}
	return tw.Flush()
}
