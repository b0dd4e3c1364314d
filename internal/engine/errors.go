package engine

import (
	"errors"
	"fmt"

	"github.com/threadguard/threadguard/internal/database/models"
	"github.com/threadguard/threadguard/internal/engine/dispatch"
	"github.com/threadguard/threadguard/internal/engine/escalate"
	"github.com/threadguard/threadguard/internal/engine/ratelimit"
	"github.com/threadguard/threadguard/internal/engine/reports"
	"github.com/threadguard/threadguard/internal/engine/votes"
)

// Error kinds exposed to the surrounding service. Component sentinels
// wrap into these so callers branch on errors.Is against a small fixed
// vocabulary instead of per-component errors.
var (
	// ErrValidation marks malformed or rejected input. Not retryable.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited marks a soft reject; the caller may retry after the
	// decision's reset time.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrConflict marks a lost race against a concurrent transition.
	// The caller retries with fresh state.
	ErrConflict = errors.New("concurrent state conflict")
	// ErrDependencyUnavailable marks a storage or audit outage that
	// survived internal retries.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrInvariant marks a request that would break an engine invariant.
	// Fatal to the call, never coerced into something valid.
	ErrInvariant = errors.New("invariant violation")
)

// classify wraps component errors into the engine's error kinds.
// Unrecognized errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, votes.ErrSelfVote),
		errors.Is(err, models.ErrDuplicateReport),
		errors.Is(err, reports.ErrInvalidTransition),
		errors.Is(err, dispatch.ErrMissingTarget),
		errors.Is(err, models.ErrReportNotFound),
		errors.Is(err, models.ErrActorNotFound):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, models.ErrStaleReport):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, ratelimit.ErrStoreUnavailable),
		errors.Is(err, dispatch.ErrAuditFailed):
		return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	case errors.Is(err, escalate.ErrEscalateDownward),
		errors.Is(err, escalate.ErrEscalateSelf),
		errors.Is(err, dispatch.ErrRoleBound):
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	default:
		return err
	}
}
