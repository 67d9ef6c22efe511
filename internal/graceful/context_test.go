package graceful

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestContext_CanceledOnSignal(t *testing.T) {
	ctx, cancel := Context(context.Background())
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("Failed to send SIGINT: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("Expected context.Canceled error, got %v", ctx.Err())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out waiting for context to be canceled.")
	}
}

func TestContext_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := Context(parent)
	defer cancel()

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("child context not canceled with parent")
	}
}
