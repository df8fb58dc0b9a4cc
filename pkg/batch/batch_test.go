package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunProcessesAllItems(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	var mu sync.Mutex
	seen := map[string]bool{}

	err := Run(context.Background(), 3, items, func(ctx context.Context, item string) error {
		mu.Lock()
		seen[item] = true
		mu.Unlock()
		return nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != len(items) {
		t.Errorf("processed %d items, want %d", len(seen), len(items))
	}
}

func TestRunCollectsFailuresWithoutAborting(t *testing.T) {
	items := []string{"good1", "bad1", "good2", "bad2"}
	var processed atomic.Int32
	sentinel := errors.New("broken input")

	err := Run(context.Background(), 2, items, func(ctx context.Context, item string) error {
		processed.Add(1)
		if strings.HasPrefix(item, "bad") {
			return fmt.Errorf("parsing: %w", sentinel)
		}
		return nil
	}, nil)
	if got := processed.Load(); got != 4 {
		t.Errorf("processed %d items, want 4", got)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want wrapped sentinel", err)
	}
	if !strings.Contains(err.Error(), "bad1") || !strings.Contains(err.Error(), "bad2") {
		t.Errorf("err %q does not name the failing items", err)
	}
}

func TestRunReportsProgress(t *testing.T) {
	items := []string{"x", "y", "z"}
	var mu sync.Mutex
	var calls int
	var lastDone int

	err := Run(context.Background(), 1, items, func(ctx context.Context, item string) error {
		return nil
	}, func(done, total int, item string, err error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		lastDone = done
		if total != len(items) {
			t.Errorf("total = %d, want %d", total, len(items))
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != len(items) || lastDone != len(items) {
		t.Errorf("progress calls = %d, last done = %d", calls, lastDone)
	}
}

func TestRunStopsSchedulingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	items := make([]string, 100)
	for i := range items {
		items[i] = fmt.Sprint(i)
	}
	var processed atomic.Int32

	err := Run(ctx, 1, items, func(ctx context.Context, item string) error {
		if processed.Add(1) == 3 {
			cancel()
		}
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if got := processed.Load(); got >= 100 {
		t.Errorf("processed %d items after cancellation", got)
	}
}

func TestRunClampsWorkerCount(t *testing.T) {
	err := Run(context.Background(), 0, []string{"only"}, func(ctx context.Context, item string) error {
		return nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
}
