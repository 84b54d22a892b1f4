package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and platform layers return
// these (optionally wrapped) so callers can branch with errors.Is without
// depending on concrete store types.
//
// - ErrNotFound: entity does not exist in the store
// - ErrInvalidConfig: configuration rejected at construction time
// - ErrUnavailable: backing service temporarily unreachable
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnavailable   = errors.New("unavailable")
)
