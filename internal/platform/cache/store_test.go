package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "roster", nil
	}

	// A standings page fan-out hits the same roster key from many
	// request goroutines at once; only one loader call should run.
	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "team:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "roster" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "team:id:ice-hawks", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "team:id:ice-hawks", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "player:list", "a")
	store.Set(ctx, "player:id:p1", "b")
	store.Set(ctx, "team:list", "c")

	store.DeletePrefix(ctx, "player:")

	if _, ok := store.Get(ctx, "player:list"); ok {
		t.Fatalf("expected player:list to be invalidated")
	}
	if _, ok := store.Get(ctx, "player:id:p1"); ok {
		t.Fatalf("expected player:id:p1 to be invalidated")
	}
	if _, ok := store.Get(ctx, "team:list"); !ok {
		t.Fatalf("expected team:list to survive prefix delete")
	}
}
