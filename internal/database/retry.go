package database

import (
	"context"
	"time"

	"github.com/curahealth/cura/backend/go-services/pkg/logger"
)

// Retry calls connect up to attempts times, doubling the pause after each
// failure starting from backoff, to tolerate startup races with the
// database container. It returns the last error.
func Retry(ctx context.Context, name string, attempts int, backoff time.Duration, connect func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = connect(ctx); err == nil {
			return nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to %s: %v", attempt, attempts, name, err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
