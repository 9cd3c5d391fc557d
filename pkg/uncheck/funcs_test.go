package uncheck

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestConsumer_AndThenStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	errSecond := errors.New("second failed")
	var log []string

	first := Consumer[string](func(_ context.Context, s string) error {
		log = append(log, "first:"+s)
		return nil
	})
	second := Consumer[string](func(_ context.Context, s string) error {
		log = append(log, "second:"+s)
		return errSecond
	})
	third := Consumer[string](func(_ context.Context, s string) error {
		log = append(log, "third:"+s)
		return nil
	})

	composed := first.AndThen(second).AndThen(third)

	if err := composed(ctx, "x"); err != errSecond {
		t.Fatalf("expected errSecond unchanged, got %v", err)
	}

	raised := Catch(func() { Accept(ctx, composed, "y") })
	var e *Error
	if !errors.As(raised, &e) || e.Kind() != KindGeneric {
		t.Fatalf("expected generic wrapper, got %v", raised)
	}
	if Unwrap(raised) != errSecond {
		t.Fatalf("expected root errSecond, got %v", Unwrap(raised))
	}

	want := []string{"first:x", "second:x", "first:y", "second:y"}
	if !slices.Equal(log, want) {
		t.Fatalf("unexpected side effects: %v", log)
	}
}

func TestRunnable_AndThen(t *testing.T) {
	t.Parallel()

	var n int
	inc := Runnable(func(context.Context) error { n++; return nil })

	if err := inc.AndThen(inc).AndThen(inc)(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 runs, got %d", n)
	}
}

func TestBiConsumer_AndThen(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	write := BiConsumer[string, int](func(_ context.Context, k string, v int) error {
		sb.WriteString(k)
		sb.WriteByte(byte('0' + v))
		return nil
	})

	if err := write.AndThen(write)(context.Background(), "a", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "a1a1" {
		t.Fatalf("unexpected output %q", sb.String())
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	double := Function[int, int](func(_ context.Context, v int) (int, error) { return v * 2, nil })
	describe := Function[int, string](func(_ context.Context, v int) (string, error) {
		return strings.Repeat("*", v), nil
	})

	got := Apply(ctx, Compose(Compose(Identity[int](), double), describe), 2)
	if got != "****" {
		t.Fatalf("unexpected result %q", got)
	}

	errParse := errors.New("parse")
	failing := Function[int, int](func(context.Context, int) (int, error) { return 0, errParse })
	called := false
	spy := Function[int, int](func(_ context.Context, v int) (int, error) { called = true; return v, nil })

	if _, err := Compose(failing, spy)(ctx, 1); err != errParse || called {
		t.Fatalf("expected short-circuit on errParse, got err=%v called=%v", err, called)
	}
}

func TestThenApply(t *testing.T) {
	t.Parallel()

	sum := BiFunction[int, int, int](func(_ context.Context, a, b int) (int, error) { return a + b, nil })
	neg := Function[int, int](func(_ context.Context, v int) (int, error) { return -v, nil })

	if got := ApplyBi(context.Background(), ThenApply(sum, neg), 2, 3); got != -5 {
		t.Fatalf("expected -5, got %d", got)
	}
}

func TestPredicate_ShortCircuits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var evaluated int
	yes := Predicate[int](func(context.Context, int) (bool, error) { evaluated++; return true, nil })
	no := Predicate[int](func(context.Context, int) (bool, error) { evaluated++; return false, nil })

	if Test(ctx, no.And(yes), 0) {
		t.Fatalf("false && true must be false")
	}
	if evaluated != 1 {
		t.Fatalf("And evaluated %d predicates, want 1", evaluated)
	}

	evaluated = 0
	if !Test(ctx, yes.Or(no), 0) {
		t.Fatalf("true || false must be true")
	}
	if evaluated != 1 {
		t.Fatalf("Or evaluated %d predicates, want 1", evaluated)
	}

	if Test(ctx, yes.Negate(), 0) {
		t.Fatalf("!true must be false")
	}

	errBroken := errors.New("broken")
	broken := Predicate[int](func(context.Context, int) (bool, error) { return true, errBroken })
	if _, err := broken.Or(yes)(ctx, 0); err != errBroken {
		t.Fatalf("expected errBroken, got %v", err)
	}
}

type person struct {
	name string
	age  int
}

func TestComparator_WithSortFunc(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	byAge := ComparingOrdered(Function[person, int](func(_ context.Context, p person) (int, error) { return p.age, nil }))
	byName := ComparingOrdered(Function[person, string](func(_ context.Context, p person) (string, error) { return p.name, nil }))

	people := []person{{"carol", 30}, {"alice", 30}, {"bob", 25}}
	slices.SortFunc(people, UncheckComparator(ctx, byAge.ThenComparing(byName)))

	want := []person{{"bob", 25}, {"alice", 30}, {"carol", 30}}
	if !slices.Equal(people, want) {
		t.Fatalf("unexpected order: %v", people)
	}

	slices.SortFunc(people, UncheckComparator(ctx, byAge.Reversed()))
	if people[2].name != "bob" {
		t.Fatalf("expected bob last when reversed, got %v", people)
	}
}

func TestMinByMaxBy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	byAge := ComparingOrdered(Function[person, int](func(_ context.Context, p person) (int, error) { return p.age, nil }))
	a, b := person{"a", 40}, person{"b", 40}
	young := person{"y", 10}

	if got := Operate(ctx, MinBy(byAge), young, a); got != young {
		t.Fatalf("MinBy: got %v", got)
	}
	if got := Operate(ctx, MaxBy(byAge), young, a); got != a {
		t.Fatalf("MaxBy: got %v", got)
	}
	if got := Operate(ctx, MinBy(byAge), a, b); got != b {
		t.Fatalf("MinBy tie must yield second, got %v", got)
	}
	if got := Operate(ctx, MaxBy(byAge), a, b); got != b {
		t.Fatalf("MaxBy tie must yield second, got %v", got)
	}
}
