package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/ib-77/unexceptional/pkg/uncheck/closing"
	"github.com/spf13/cobra"
)

func newFreePortCmd(opts *options) *cobra.Command {
	var ports portRange

	cmd := &cobra.Command{
		Use:   "freeport",
		Short: "Print a TCP port that is free to listen on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fp := opts.cfg.FreePort
			if cmd.Flags().Changed("range") {
				fp.From, fp.To = ports.from, ports.to
			}

			port, err := freePort(cmd.Context(), fp.Host, fp.From, fp.To)
			if err != nil {
				return err
			}
			opts.logger.Debug("Found free port", "host", fp.Host, "port", port)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), port)
			return err
		},
	}

	cmd.Flags().Var(&ports, "range", "ports to probe, e.g. 8000-8100 (default: any)")
	return cmd
}

func listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}

func listenerPort(_ context.Context, l net.Listener) (int, error) {
	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address %v", l.Addr())
	}
	return addr.Port, nil
}

// freePort binds each candidate port in turn and releases it again. A zero
// from lets the OS choose.
func freePort(ctx context.Context, host string, from, to int) (int, error) {
	if from == 0 {
		from, to = 0, 0
	}

	var last error
	for p := from; p <= to; p++ {
		res := uncheck.Try(ctx, func(ctx context.Context) (int, error) {
			port, _ := closing.CreateApply(ctx, listen, net.JoinHostPort(host, strconv.Itoa(p)), listenerPort)
			return port, nil
		})
		if res.IsSuccess() {
			return res.Result(), nil
		}
		if res.IsCancel() {
			return 0, res.Err()
		}
		last = res.Err()
	}
	return 0, fmt.Errorf("no free port in %d-%d: %w", from, to, last)
}
