package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"farmbot/config"
	"farmbot/model"
	"farmbot/ui"
)

func newChartCmd(opts *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		kind    string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the crop suitability chart for a set of filters",
		Long: `Fetch suitability scores for the given filters and draw them as a bar or
radar chart. Climate condition is accepted for parity with the interactive
view but is not part of the recommendations query.

Examples:
  farmbot chart
  farmbot chart --soil Loamy --season Rabi
  farmbot chart --kind radar --width 70 --height 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}

			if kind == "" {
				kind = s.cfg.ChartKind
			}
			switch kind {
			case config.ChartBar, config.ChartRadar:
			default:
				return fmt.Errorf("unknown chart kind %q (want %q or %q)", kind, config.ChartBar, config.ChartRadar)
			}

			if err := s.applyFilters(&filters); err != nil {
				return err
			}

			canvas := ui.NewTerminalCanvas()
			s.ctrl.Renderer.SetKind(model.ChartKind(kind))
			s.ctrl.Renderer.Attach(model.ControlCropChart, canvas)

			s.ctrl.Settle(s.ctrl.Recs.Refresh(s.ctrl.CurrentFilters()))
			if err := s.ctrl.Recs.LastError(); err != nil {
				return fmt.Errorf("failed to load recommendations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), canvas.View(width, height))
			return nil
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().StringVar(&kind, "kind", "", "Chart kind: bar or radar (default from settings)")
	cmd.Flags().IntVar(&width, "width", 60, "Chart width in columns")
	cmd.Flags().IntVar(&height, "height", 16, "Chart height in rows")

	return cmd
}
