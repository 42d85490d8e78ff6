package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mordilloSan/helog/logger"
)

func newEmitCmd(opts *options) *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "emit [message...]",
		Short: "Write one log record",
		Example: `  helog emit --level warn --type network "connection reset"
  helog emit -f '{$level}-{$type}-{$message}' -l fatal -t load boom`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, typ, err := flags.parse()
			if err != nil {
				return err
			}
			cfg, err := opts.engineConfig(cmd.OutOrStdout(), flags.format)
			if err != nil {
				return err
			}
			if !logger.Enabled {
				opts.diag.Warn().Msg("release build: records are not emitted")
			}
			logger.New(cfg).Log(level, typ, strings.Join(args, " "))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
