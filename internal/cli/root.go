package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ib-77/unexceptional/internal/config"
	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	cfgPath string
	debug   bool

	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "unx",
		Short:         "Unchecked failure handling demo",
		Long:          `unx exercises the uncheck library: it lists directories, probes free ports and classifies I/O failures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(opts.cfgPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = newLogger(cmd.ErrOrStderr(), cfg.Logging, opts.debug)
			opts.logger.Debug("Config loaded", "path", opts.cfgPath)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newLsCmd(opts),
		newFreePortCmd(opts),
		newClassifyCmd(opts),
	)
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := uncheck.WithInterrupt(ctx)
	defer cancel()

	if err := run(ctx, NewRootCmd()); err != nil {
		os.Exit(1)
	}
}

// run executes cmd and reports any failure, returned or raised, on the
// default logger.
func run(ctx context.Context, cmd *cobra.Command) error {
	var err error
	if raised := uncheck.Catch(func() { err = cmd.ExecuteContext(ctx) }); raised != nil {
		err = raised
	}
	if err == nil {
		return nil
	}

	attrs := []any{"error", err}
	if kind, ok := uncheck.KindOf(err); ok {
		attrs = append(attrs, "kind", kind.String())
	}
	var p *uncheck.PanicError
	if errors.As(err, &p) {
		attrs = append(attrs, "incident", p.ID().String())
	}
	slog.Error("Command failed", attrs...)
	return err
}
