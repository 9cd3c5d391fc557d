package stream

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/ib-77/unexceptional/pkg/uncheck/closing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func even(_ context.Context, v int) (bool, error) { return v%2 == 0, nil }

func ascending(_ context.Context, a, b int) (int, error) { return a - b, nil }

func TestFilterMapCollect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	got := Map(Of(ctx, 1, 2, 3, 4).Filter(even), func(_ context.Context, v int) (string, error) {
		return strconv.Itoa(v * 10), nil
	}).Collect()

	assert.Equal(t, []string{"20", "40"}, got)
}

func TestStream_IsLazy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var peeked []int
	s := Of(ctx, 1, 2, 3).Peek(func(_ context.Context, v int) error {
		peeked = append(peeked, v)
		return nil
	})
	assert.Empty(t, peeked)

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []int{1, 2, 3}, peeked)
}

func TestLimit_StopsPullingUpstream(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pulled := 0
	naturals := func(yield func(int) bool) {
		for i := 0; ; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	assert.Equal(t, []int{0, 1, 2}, From(ctx, iter.Seq[int](naturals)).Limit(3).Collect())
	assert.Equal(t, 3, pulled)
	assert.Empty(t, Of(ctx, 1, 2).Limit(0).Collect())
}

func TestSorted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	desc := uncheck.Comparator[int](ascending).Reversed()
	assert.Equal(t, []int{9, 5, 1}, Of(ctx, 5, 1, 9).Sorted(desc).Collect())
}

func TestFlatMap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	words := FlatMap(Of(ctx, "a b", "c"), func(_ context.Context, line string) (iter.Seq[string], error) {
		return slices.Values(strings.Fields(line)), nil
	})

	assert.Equal(t, []string{"a", "b", "c"}, words.Collect())
}

func TestMatchers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.True(t, Of(ctx, 1, 2).AnyMatch(even))
	assert.False(t, Of(ctx, 1, 2).AllMatch(even))
	assert.True(t, Of(ctx, 2, 4).AllMatch(even))
	assert.True(t, Of[int](ctx).AllMatch(even))
	assert.True(t, Of(ctx, 1, 3).NoneMatch(even))
}

func TestMinMaxReduceFold(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	minV, ok := Of(ctx, 4, 2, 8).Min(ascending)
	require.True(t, ok)
	assert.Equal(t, 2, minV)

	maxV, ok := Of(ctx, 4, 2, 8).Max(ascending)
	require.True(t, ok)
	assert.Equal(t, 8, maxV)

	_, ok = Of[int](ctx).Min(ascending)
	assert.False(t, ok)

	sum, ok := Of(ctx, 1, 2, 3).Reduce(func(_ context.Context, a, b int) (int, error) { return a + b, nil })
	require.True(t, ok)
	assert.Equal(t, 6, sum)

	joined := Fold(Of(ctx, 1, 2, 3), "", func(_ context.Context, acc string, v int) (string, error) {
		return acc + strconv.Itoa(v), nil
	})
	assert.Equal(t, "123", joined)
}

func TestFailingStepRaisesOnTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	errOdd := errors.New("odd value")
	s := Map(Of(ctx, 2, 3, 4), func(_ context.Context, v int) (int, error) {
		if v%2 != 0 {
			return 0, errOdd
		}
		return v, nil
	})

	var seen []int
	raised := uncheck.Catch(func() {
		s.ForEach(func(_ context.Context, v int) error {
			seen = append(seen, v)
			return nil
		})
	})

	assert.Equal(t, []int{2}, seen)
	assert.Same(t, errOdd, uncheck.Unwrap(raised))
}

func readDir(_ context.Context, dir string) (iter.Seq[string], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !yield(e.Name()) {
				return
			}
		}
	}, nil
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	assert.Equal(t, []string{"a.txt", "b.txt"}, Open(ctx, readDir, dir).Collect())

	raised := uncheck.Catch(func() { Open(ctx, readDir, filepath.Join(dir, "missing")) })
	kind, _ := uncheck.KindOf(raised)
	assert.Equal(t, uncheck.KindIO, kind)
	assert.ErrorIs(t, raised, fs.ErrNotExist)
}

func TestClose_RunsHandlersOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var order []string
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	s := Of(ctx, 1).
		OnClose(func() error { order = append(order, "a"); return errFirst }).
		OnClose(func() error { order = append(order, "b"); return errSecond })
	// Handlers are shared with derived streams.
	derived := s.Filter(even)

	err := derived.Close()
	assert.Equal(t, []string{"a", "b"}, order)

	var e *uncheck.Error
	require.ErrorAs(t, err, &e)
	assert.Same(t, errFirst, e.Unwrap())
	assert.Equal(t, []error{errSecond}, e.Suppressed())

	assert.NoError(t, s.Close())
	assert.Len(t, order, 2)
}

func TestStream_WithClosing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	closed := false
	s := Of(ctx, 1, 2, 3).OnClose(func() error { closed = true; return nil })

	total, ok := closing.Apply(ctx, s, func(_ context.Context, s *Stream[int]) (int, error) {
		return Fold(s, 0, func(_ context.Context, acc, v int) (int, error) { return acc + v, nil }), nil
	})

	assert.True(t, ok)
	assert.Equal(t, 6, total)
	assert.True(t, closed)
}
