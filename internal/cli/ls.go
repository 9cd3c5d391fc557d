package cli

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/ib-77/unexceptional/pkg/uncheck/stream"
	"github.com/spf13/cobra"
)

func newLsCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory through a checked stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			lines := uncheck.Try(cmd.Context(), func(ctx context.Context) ([]string, error) {
				return listDir(ctx, dir, all), nil
			})
			if lines.IsFailure() {
				opts.logger.Debug("Listing failed", "dir", dir, "root", uncheck.Unwrap(lines.Err()))
				return lines.Err()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, line := range lines.Result() {
				_, _ = fmt.Fprintln(w, line)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include entries starting with a dot")
	return cmd
}

// listDir raises any failure through uncheck.Rethrow.
func listDir(ctx context.Context, dir string, all bool) []string {
	entries := stream.Open(ctx, readDir, dir)
	if !all {
		entries = entries.Filter(visible)
	}
	return stream.Map(entries, describe).Collect()
}

func readDir(_ context.Context, dir string) (iter.Seq[fs.DirEntry], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return slices.Values(entries), nil
}

func visible(_ context.Context, e fs.DirEntry) (bool, error) {
	return !strings.HasPrefix(e.Name(), "."), nil
}

func describe(_ context.Context, e fs.DirEntry) (string, error) {
	info, err := e.Info()
	if err != nil {
		return "", err
	}

	name := e.Name()
	if e.IsDir() {
		name += "/"
	}
	return fmt.Sprintf("%s\t%d\t%s", name, info.Size(), info.Mode()), nil
}
