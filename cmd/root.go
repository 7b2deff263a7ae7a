package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zdbsp",
	Short: "zdbsp - BSP node builder for 2D polygonal levels",
	Long: `zdbsp loads a YAML level description (vertices, linedefs, sidedefs,
sectors) and runs it through the BSP node builder, producing classic or
GL-nodes output and a build report.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
