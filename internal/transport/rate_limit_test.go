package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_DisabledIsNil(t *testing.T) {
	rl := NewRateLimiter(0, 5)
	if rl != nil {
		t.Fatal("Expected nil limiter for a zero rate")
	}

	// nil limiter never blocks
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("Expected no error from nil limiter, got %v", err)
	}
	if remaining, _ := rl.GetState(); remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
}

func TestRateLimiter_BurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(1, 3) // 1 per minute, burst of 3

	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Request %d should pass within burst: %v", i+1, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("Request 4 should wait past the deadline")
	}
}

func TestRateLimiter_CanceledContext(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	_ = rl.Wait(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rl.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRateLimiter_GetState(t *testing.T) {
	rl := NewRateLimiter(60, 5)

	remaining, reset := rl.GetState()
	if remaining != 5 {
		t.Errorf("Expected 5 remaining, got %d", remaining)
	}
	if reset.Before(time.Now().Add(-time.Second)) {
		t.Errorf("Expected reset time near now, got %v", reset)
	}

	_ = rl.Wait(context.Background())
	_ = rl.Wait(context.Background())
	remaining, reset = rl.GetState()
	if remaining > 3 {
		t.Errorf("Expected at most 3 remaining, got %d", remaining)
	}
	if !reset.After(time.Now()) {
		t.Error("Expected reset time in the future after consuming tokens")
	}
}

func TestRateLimiter_MinimumBurst(t *testing.T) {
	rl := NewRateLimiter(60, 0)
	if remaining, _ := rl.GetState(); remaining != 1 {
		t.Errorf("Expected burst clamped to 1, got %d", remaining)
	}
}
