package ai

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"strings"
	"time"
)

// retryMaxAttempts bounds how many times a generation call is tried before
// the last error is surfaced.
const retryMaxAttempts = 3

// retryableCodes are the HTTP status codes worth retrying. Provider errors
// carry them in the message text.
var retryableCodes = []string{"429", "500", "502", "503", "504"}

// RetryingGenerator decorates a Generator with exponential backoff:
// 2^attempt seconds plus random jitter in [0,1) between tries, for
// transport errors and retryable status codes only.
type RetryingGenerator struct {
	inner Generator
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps a generator in the standard retry policy.
func WithRetry(inner Generator) *RetryingGenerator {
	return &RetryingGenerator{inner: inner, sleep: sleepCtx}
}

// Generate implements Generator.
func (r *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return r.do(ctx, func(ctx context.Context) (string, error) {
		return r.inner.Generate(ctx, prompt)
	})
}

// GenerateWithImage implements Generator.
func (r *RetryingGenerator) GenerateWithImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	return r.do(ctx, func(ctx context.Context) (string, error) {
		return r.inner.GenerateWithImage(ctx, prompt, imageB64, mimeType)
	})
}

func (r *RetryingGenerator) do(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var text string
	var err error

	for attempt := 0; attempt < retryMaxAttempts; attempt++ {
		text, err = fn(ctx)
		if err == nil || !isRetryable(err) {
			return text, err
		}
		if attempt == retryMaxAttempts-1 {
			break
		}

		delay := time.Duration(math.Pow(2, float64(attempt))*float64(time.Second)) +
			time.Duration(rand.Float64()*float64(time.Second))
		if serr := r.sleep(ctx, delay); serr != nil {
			return "", serr
		}
	}

	return text, err
}

// isRetryable reports whether an error looks transient: a network-level
// failure or a retryable HTTP status.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := err.Error()
	for _, code := range retryableCodes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(msg), "rate limit")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
