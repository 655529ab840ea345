package gateway

import (
	"context"
)

// Retry repeats the whole endpoint fallback of Call up to MaxAttempts times,
// waiting a fixed RetryDelay between attempts. The wait is a timer on the
// gateway clock, so only the calling goroutine waits.
func Retry[T any](ctx context.Context, g *Gateway, op Operation[T]) (T, error) {
	log := g.logger(ctx)

	var (
		zero    T
		lastErr error
	)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		result, _, err := Call(ctx, g, op)
		if err == nil {
			g.recorder.ObserveAttempt(g.category, OutcomeSuccess)
			if attempt > 1 {
				log.Info().Int("attempt", attempt).Msg("RPC request succeeded after retry")
			}

			return result, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			g.recorder.ObserveAttempt(g.category, OutcomeCanceled)
			return zero, ctxErr
		}

		g.recorder.ObserveAttempt(g.category, OutcomeFailure)
		lastErr = err

		if attempt == g.maxAttempts {
			break
		}

		log.Warn().
			Int("attempt", attempt).
			Int("max_attempts", g.maxAttempts).
			Dur("retry_in", g.retryDelay).
			Err(err).
			Msg("RPC attempt failed, retrying")

		select {
		case <-g.clock.TickAfter(g.retryDelay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	log.Error().
		Int("attempts", g.maxAttempts).
		Err(lastErr).
		Msg("RPC request failed, giving up")

	return zero, &RetriesExhaustedError{
		Category: g.category,
		Attempts: g.maxAttempts,
		Last:     lastErr,
	}
}
