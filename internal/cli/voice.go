package cli

import (
	"context"
	"errors"
	"time"

	"github.com/23sarma/Life-os/internal/speech"
)

// captureOnce runs one listening session and waits for its outcome.
func captureOnce(ctx context.Context, r speech.Recognizer, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	r.StartListening(ctx,
		func(text string) { done <- outcome{text: text} },
		func(reason string) { done <- outcome{err: errors.New(reason)} },
	)

	select {
	case o := <-done:
		return o.text, o.err
	case <-ctx.Done():
		r.StopListening()
		return "", ctx.Err()
	}
}
