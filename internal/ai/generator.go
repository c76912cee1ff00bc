package ai

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

var (
	// ErrCredentialMissing means no API key was configured. Callers treat it as the normal degraded mode.
	ErrCredentialMissing = errors.New("reasoning service credential missing")
	// ErrUpstreamUnavailable wraps transport, timeout and service-side failures.
	ErrUpstreamUnavailable = errors.New("reasoning service unavailable")
	// ErrMalformedResponse means the service answered with text we could not use.
	ErrMalformedResponse = errors.New("reasoning service returned a malformed response")
)

// Generator turns a single prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FailSoft runs primary when a generator is configured and returns fallback() whenever
// the generator is absent or primary fails. The boolean reports whether primary's value was used.
func FailSoft[T any](ctx context.Context, log zerolog.Logger, op string, gen Generator,
	primary func(context.Context, Generator) (T, error), fallback func() T) (T, bool) {
	if gen == nil {
		log.Debug().Str("op", op).Err(ErrCredentialMissing).Msg("using deterministic fallback")
		return fallback(), false
	}

	out, err := primary(ctx, gen)
	if err == nil {
		return out, true
	}

	evt := log.Warn().Str("op", op).Err(err)
	switch {
	case errors.Is(err, ErrCredentialMissing):
		evt = log.Debug().Str("op", op).Err(err)
	case errors.Is(err, ErrMalformedResponse):
		evt = evt.Str("kind", "malformed_response")
	case errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		evt = evt.Str("kind", "upstream_unavailable")
	}
	evt.Msg("reasoning service failed, using deterministic fallback")

	return fallback(), false
}
