package report

import (
	"context"

	"github.com/google/uuid"

	"tiercheck/internal/verify"
)

// Store persists verification step results for later inspection.
//
// Error contract: Get returns sentinel.ErrNotFound (wrapped) when no step
// with the given ID exists; infrastructure failures are returned wrapped
// with context.
type Store interface {
	Save(ctx context.Context, result *verify.StepResult) error
	Get(ctx context.Context, id uuid.UUID) (*verify.StepResult, error)
	List(ctx context.Context) ([]*verify.StepResult, error)
}
