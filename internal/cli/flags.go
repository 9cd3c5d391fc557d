package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// portRange is a "from-to" flag value. A single port stands for itself.
type portRange struct {
	from, to int
}

var _ pflag.Value = (*portRange)(nil)

func (r *portRange) String() string {
	if r.from == 0 && r.to == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

func (r *portRange) Set(s string) error {
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}

	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", lo, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", hi, err)
	}
	if from < 1 || to > 65535 || to < from {
		return fmt.Errorf("invalid port range %d-%d", from, to)
	}

	r.from, r.to = from, to
	return nil
}

func (r *portRange) Type() string { return "range" }
