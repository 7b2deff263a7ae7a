package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doomtech/zdbsp/bsp"
	"github.com/doomtech/zdbsp/level"
)

var buildGL bool

var buildCmd = &cobra.Command{
	Use:   "build <level.yaml>",
	Short: "Run a level through the BSP node builder",
	Long:  `Loads a YAML level description and builds classic or GL-nodes output, printing a summary report.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		lvl := level.New()
		if err := lvl.Load(path); err != nil {
			return fmt.Errorf("loading level %s: %w", path, err)
		}

		input := lvl.ToInput()
		input.MakeGL = buildGL

		start := time.Now()
		out, err := bsp.Build(input)
		if err != nil {
			var be *bsp.BuildError
			if errors.As(err, &be) {
				return fmt.Errorf("building %s: %w", path, be)
			}
			return fmt.Errorf("building %s: %w", path, err)
		}
		elapsed := time.Since(start)

		fmt.Printf("Built %s in %s\n", path, elapsed)
		fmt.Printf("  vertices:   %d\n", len(out.Vertices))
		fmt.Printf("  nodes:      %d\n", len(out.Nodes))
		fmt.Printf("  subsectors: %d\n", len(out.Subsectors))
		if buildGL {
			fmt.Printf("  gl segs:    %d\n", len(out.GLSegs))
		} else {
			fmt.Printf("  segs:       %d\n", len(out.ClassicSegs))
		}
		if len(out.PolyAnchors) > 0 {
			fmt.Printf("  polyobjects: %d\n", len(out.PolyAnchors))
		}
		if out.Report.DroppedZeroLengthSegs > 0 {
			fmt.Printf("  dropped zero-length segs: %d\n", out.Report.DroppedZeroLengthSegs)
		}
		if out.Report.UnclosableSubsectors > 0 {
			fmt.Printf("  unclosable subsectors:    %d\n", out.Report.UnclosableSubsectors)
		}
		if out.Report.WidenedEpsilonRetries > 0 {
			fmt.Printf("  widened-epsilon retries:  %d\n", out.Report.WidenedEpsilonRetries)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildGL, "gl", false, "emit GL-nodes output instead of classic nodes")
}
