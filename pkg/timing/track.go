package timing

import (
	"context"
	"errors"
	"fmt"

	"github.com/beaconhq/beacon/pkg/telemetry"
	"github.com/google/uuid"
)

// unknownError mirrors the wire value used when a failure carries no
// message of its own.
const unknownError = "Unknown error"

// Track runs fn with timing around it and always emits one
// performance_metric event, success or failure.
//
// On success the event carries {success:true} and fn's result is returned
// unchanged. On failure the event carries {success:false, error_message}
// and the original error is returned as-is: the registry observes caller
// failures, it never swallows them. A panic inside fn is re-raised after
// the failure event is emitted.
func Track[T any](ctx context.Context, r *Registry, operationID string, fn func(context.Context) (T, error)) (result T, err error) {
	r.Start(operationID)

	defer func() {
		if rec := recover(); rec != nil {
			r.failed(ctx, operationID, panicMessage(rec), panicError(rec))
			panic(rec)
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		r.failed(ctx, operationID, errorMessage(err), err)
		return result, err
	}

	r.End(ctx, operationID, telemetry.Params{"success": true})
	return result, nil
}

// WithTracking wraps an operation in start/end timing, deriving a unique
// operation id per invocation so concurrent calls of the same logical
// operation cannot collide in the registry.
func WithTracking[T any](r *Registry, name string, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		operationID := fmt.Sprintf("%s_%s", name, uuid.NewString())
		return Track(ctx, r, operationID, fn)
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}
	return err.Error()
}

func panicMessage(rec interface{}) string {
	switch v := rec.(type) {
	case error:
		return errorMessage(v)
	case string:
		if v == "" {
			return unknownError
		}
		return v
	default:
		return unknownError
	}
}

func panicError(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return errors.New(panicMessage(rec))
}
