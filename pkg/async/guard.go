package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// Protect runs fn and converts a panic into an error. Use this at boundaries
// where a misbehaving collaborator must not take down the caller, e.g. around
// analytics provider calls.
//
// Example:
//
//	err := async.Protect("provider logEvent", func() error {
//	    return provider.LogEvent(ctx, handle, name, params)
//	})
func Protect(taskName string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"task":  taskName,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("panic recovered")
			err = fmt.Errorf("panic in %s: %v", taskName, r)
		}
	}()
	return fn()
}

// SafeGo executes a function in a goroutine with:
// - Context cancellation support
// - Panic recovery
// - Timeout enforcement
// - Error logging
//
// Use this instead of bare `go func()` to prevent goroutine leaks and crashes.
//
// Example:
//
//	SafeGo(ctx, 5*time.Second, "flush events", func(ctx context.Context) error {
//	    return client.Flush(ctx)
//	})
func SafeGo(parentCtx context.Context, timeout time.Duration, taskName string, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(parentCtx, timeout)
		defer cancel()

		if err := Protect(taskName, func() error { return fn(ctx) }); err != nil {
			// Log error but don't crash
			// Caller can decide if this is critical or not
			logrus.WithField("task", taskName).WithError(err).Error("background task failed")
		}
	}()
}
