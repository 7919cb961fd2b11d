package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/juju/retry"
)

// Wait runs op until it exits zero, sleeping interval between attempts. A
// command that cannot be started ends the wait immediately. Without a
// configured WaitMax, Wait blocks until op succeeds or ctx is done.
func (e *Handler) Wait(ctx context.Context, op Command, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}

	err := retry.Call(retry.CallArgs{
		Func: func() error {
			_, err := e.runCaptured(op)

			return err
		},
		IsFatalError: func(err error) bool {
			return !errors.Is(err, ErrNonZeroExit)
		},
		NotifyFunc: func(lastErr error, attempt int) {
			slog.Debug("Still waiting for command to succeed.", "cmd", op.String(), "attempt", attempt)
		},
		Attempts:    retry.UnlimitedAttempts,
		Delay:       interval,
		MaxDuration: e.waitMax,
		Clock:       e.clock,
		Stop:        ctx.Done(),
	})
	if err == nil {
		return nil
	}

	switch {
	case retry.IsDurationExceeded(err):
		return fmt.Errorf("(exec-wait) %w: '%s' after %s: %w", ErrWaitExceeded, op, e.waitMax, retry.LastError(err))
	case retry.IsRetryStopped(err):
		return fmt.Errorf("(exec-wait) '%s': %w", op, context.Cause(ctx))
	default:
		return fmt.Errorf("(exec-wait) %w", err)
	}
}
