package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mordilloSan/helog/logger"
)

func newPipeCmd(opts *options) *cobra.Command {
	var (
		flags recordFlags
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Write one log record per line read from stdin",
		Example: `  tail -f app.out | helog pipe --type network --config helog.yaml --watch`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, typ, err := flags.parse()
			if err != nil {
				return err
			}
			if watch && opts.configPath == "" {
				return errors.New("--watch requires --config")
			}
			out := cmd.OutOrStdout()
			cfg, err := opts.engineConfig(out, flags.format)
			if err != nil {
				return err
			}
			engine := logger.New(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watchDone := make(chan struct{})
			if watch {
				overlay := opts.overrides(out, flags.format)
				go func() {
					defer close(watchDone)
					if err := engine.WatchWith(ctx, opts.configPath, opts.diag, overlay); err != nil {
						opts.diag.Error().Err(err).Msg("config watcher failed")
					}
				}()
			} else {
				close(watchDone)
			}

			err = pipeLines(ctx, cmd.InOrStdin(), engine, level, typ)
			stop()
			<-watchDone
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload --config when it changes")
	return cmd
}

// pipeLines logs every line of r until EOF or until ctx is done. Lines have
// no length limit. The reader goroutine may stay blocked on r after ctx is
// done; it exits once r returns.
func pipeLines(ctx context.Context, r io.Reader, engine *logger.Engine, level logger.Level, typ logger.Type) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("read stdin: %w", err)
				default:
					return nil
				}
			}
			engine.Log(level, typ, line)
		}
	}
}
