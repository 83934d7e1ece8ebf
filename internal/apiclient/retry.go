package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// retry runs f up to attempts times with exponential backoff. Client errors
// (4xx) fail fast since repeating the call cannot change the answer.
func retry(ctx context.Context, log zerolog.Logger, attempts int, sleep time.Duration, f func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if !retryable(err) || i == attempts-1 {
			break
		}

		log.Warn().Err(err).Dur("backoff", sleep).Msg("backend call failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	if !retryable(err) {
		return err
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func retryable(err error) bool {
	code := StatusCode(err)
	if code == 0 {
		return true
	}
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}
