package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtect_Success(t *testing.T) {
	called := false
	err := Protect("test task", func() error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestProtect_Error(t *testing.T) {
	wantErr := errors.New("provider unavailable")
	err := Protect("test task", func() error {
		return wantErr
	})

	assert.Equal(t, wantErr, err)
}

func TestProtect_Panic(t *testing.T) {
	err := Protect("test task", func() error {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in test task")
	assert.Contains(t, err.Error(), "boom")
}

func TestProtect_PanicWithError(t *testing.T) {
	err := Protect("test task", func() error {
		panic(errors.New("wrapped"))
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrapped")
}

func TestSafeGo_RunsFunction(t *testing.T) {
	var mu sync.Mutex
	ran := false
	done := make(chan struct{})

	SafeGo(context.Background(), time.Second, "test", func(ctx context.Context) error {
		mu.Lock()
		ran = true
		mu.Unlock()
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SafeGo task did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, ran)
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})

	SafeGo(context.Background(), time.Second, "test", func(ctx context.Context) error {
		defer close(done)
		panic("background boom")
	})

	select {
	case <-done:
		// The panic must not escape the goroutine.
	case <-time.After(2 * time.Second):
		t.Fatal("SafeGo task did not complete")
	}
}

func TestSafeGo_ContextTimeout(t *testing.T) {
	done := make(chan error, 1)

	SafeGo(context.Background(), 10*time.Millisecond, "test", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return nil
	})

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled")
	}
}
