package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	t.Parallel()

	s := NewStore(0)
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}
	s.Set(ctx, "k", "v")
	v, ok := s.Get(ctx, "k")
	if !ok || v.(string) != "v" {
		t.Fatalf("expected hit, got %v ok=%v", v, ok)
	}

	s.Clear(ctx)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expected miss after clear")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Nanosecond)
	ctx := context.Background()
	s.Set(ctx, "k", 1)
	time.Sleep(time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestGetOrLoadCachesResult(t *testing.T) {
	t.Parallel()

	s := NewStore(0)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return "advice", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad(ctx, "week:1", loader)
		if err != nil || v.(string) != "advice" {
			t.Fatalf("unexpected result v=%v err=%v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader should run once, ran %d times", calls)
	}
}

func TestGetOrLoadPropagatesError(t *testing.T) {
	t.Parallel()

	s := NewStore(0)
	wantErr := fmt.Errorf("boom")
	_, err := s.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return nil, wantErr
	})
	if err == nil {
		t.Fatal("expected error")
	}
}
