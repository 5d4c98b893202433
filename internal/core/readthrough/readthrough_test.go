package readthrough

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shipmate/internal/platform/errors"
	"shipmate/internal/platform/testkit"
)

func TestGetCachesWithinTTL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	now := time.Unix(1000, 0)
	c := New(30*time.Second, func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}).WithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		v, err := c.Get(context.Background())
		testkit.MustNoErr(t, err)
		if v != 42 {
			t.Fatalf("got %d", v)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected 1 fetch, got %d", n)
	}

	now = now.Add(31 * time.Second)
	_, err := c.Get(context.Background())
	testkit.MustNoErr(t, err)
	if n := calls.Load(); n != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", n)
	}
}

func TestGetErrorsNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c := New(time.Minute, func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.Unavailablef("upstream down")
		}
		return "ok", nil
	})

	_, err := c.Get(context.Background())
	testkit.MustErr(t, err)

	v, err := c.Get(context.Background())
	testkit.MustNoErr(t, err)
	if v != "ok" {
		t.Fatalf("got %q", v)
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("error result must not be cached, got %d calls", n)
	}
}

func TestGetSingleInFlightFill(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	gate := make(chan struct{})
	c := New(time.Minute, func(context.Context) (int, error) {
		calls.Add(1)
		<-gate
		return 7, nil
	})

	const workers = 8
	var wg sync.WaitGroup
	results := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = v
		}(i)
	}
	// let the goroutines pile up on the fill before releasing it
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected a single shared fetch, got %d", n)
	}
	for i, v := range results {
		if v != 7 {
			t.Fatalf("worker %d got %d", i, v)
		}
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c := New(time.Hour, func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, _ := c.Get(context.Background())
	if v != 1 {
		t.Fatalf("got %d", v)
	}
	c.Invalidate()
	v, _ = c.Get(context.Background())
	if v != 2 {
		t.Fatalf("expected refetch after invalidate, got %d", v)
	}
}
