package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/ib-77/unexceptional/pkg/uncheck/closing"
	"github.com/spf13/cobra"
)

func newClassifyCmd(opts *options) *cobra.Command {
	var head int

	cmd := &cobra.Command{
		Use:   "classify <path>...",
		Short: "Read each path and report how its failure is classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PATH\tKIND\tROOT")

			for _, path := range args {
				res := uncheck.Try(cmd.Context(), func(ctx context.Context) (int, error) {
					n, _ := closing.CreateApply(ctx, openFile, path, readHead(head))
					return n, nil
				})
				if res.IsCancel() {
					return res.Err()
				}

				kind, root := "ok", fmt.Sprintf("%d bytes", res.Result())
				if res.IsFailure() {
					kind = uncheck.Classify(res.Err()).String()
					root = uncheck.Unwrap(res.Err()).Error()
					opts.logger.Debug("Classified failure", "path", path, "kind", kind, "error", res.Err())
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", path, kind, root)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&head, "head", 512, "bytes to read from each path")
	return cmd
}

func openFile(_ context.Context, path string) (*os.File, error) {
	return os.Open(path)
}

func readHead(n int) uncheck.Function[*os.File, int] {
	return func(_ context.Context, f *os.File) (int, error) {
		buf := make([]byte, n)
		read, err := io.ReadFull(f, buf)
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			err = nil
		}
		return read, err
	}
}
