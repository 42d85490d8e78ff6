package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mordilloSan/helog/logger"
)

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List level and type labels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Levels:")
			for _, level := range logger.AllLevels() {
				fmt.Fprintf(out, "  %s\n", level)
			}
			fmt.Fprintln(out, "Types:")
			for _, typ := range logger.AllTypes() {
				fmt.Fprintf(out, "  %s\n", typ)
			}
		},
	}
}
