package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mordilloSan/helog/internal/diag"
	"github.com/mordilloSan/helog/logger"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	color      string
	verbose    bool

	diag zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{diag: diag.Nop()}

	root := &cobra.Command{
		Use:   "helog",
		Short: "Leveled, typed console logging from the command line",
		Long: `helog renders log records through a template and writes them to stdout.

Records carry a level and a type. Levels or types can be ignored through the
config file or HELOG_IGNORE_LEVELS / HELOG_IGNORE_TYPES.

Config files may be YAML, TOML or JSON5.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.diag = diag.New(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .toml, .json5)")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "Colorize level labels: auto, always or never")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose diagnostics")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newEmitCmd(opts), newPipeCmd(opts), newLevelsCmd())
	return root
}

// Execute runs the helog command tree.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "helog: %v\n", err)
	}
	return err
}

// engineConfig loads the config file, if any, and applies the command-line
// overrides to it. format is the --format flag; empty keeps the file's.
func (o *options) engineConfig(out io.Writer, format string) (logger.Config, error) {
	switch o.color {
	case "auto", "always", "never", "":
	default:
		return logger.Config{}, fmt.Errorf("invalid --color %q: want auto, always or never", o.color)
	}

	var cfg logger.Config
	if o.configPath != "" {
		loaded, err := logger.LoadConfig(o.configPath)
		if err != nil {
			return logger.Config{}, err
		}
		cfg = loaded
		o.diag.Debug().Str("path", o.configPath).Msg("config loaded")
	}
	return o.overrides(out, format)(cfg), nil
}

// overrides returns the flag overlay engineConfig applies. pipe --watch
// applies it again to every reloaded file so flags keep winning.
func (o *options) overrides(out io.Writer, format string) func(logger.Config) logger.Config {
	return func(cfg logger.Config) logger.Config {
		if format != "" {
			cfg.Format = format
		}
		switch o.color {
		case "always":
			cfg.Colorize = true
		case "never":
			cfg.Colorize = false
		default:
			if !cfg.Colorize {
				cfg.Colorize = isTerminal(out)
			}
		}
		cfg.Output = out
		cfg.ErrorHandler = func(msg string) {
			o.diag.Debug().Str("message", msg).Msg("error handler notified")
		}
		return cfg
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// recordFlags are the --level/--type/--format flags of emit and pipe.
type recordFlags struct {
	level  string
	typ    string
	format string
}

func (r *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.level, "level", "l", "info", "Record level")
	cmd.Flags().StringVarP(&r.typ, "type", "t", "unknown", "Record type")
	cmd.Flags().StringVarP(&r.format, "format", "f", "", "Record template (overrides config)")
}

func (r *recordFlags) parse() (logger.Level, logger.Type, error) {
	level, err := logger.ParseLevel(r.level)
	if err != nil {
		return 0, 0, err
	}
	typ, err := logger.ParseType(r.typ)
	if err != nil {
		return 0, 0, err
	}
	return level, typ, nil
}
