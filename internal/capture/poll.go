package capture

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Until when the deadline elapses before the
// condition reports done.
var ErrTimeout = errors.New("timed out waiting for condition")

// Until polls fn at a fixed interval until it reports done, the timeout
// elapses (ErrTimeout), the context is canceled, or fn returns an error.
// fn runs once immediately before the first interval wait.
func Until(ctx context.Context, timeout, interval time.Duration, fn func(context.Context) (bool, error)) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
