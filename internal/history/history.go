package history

import (
	"context"

	"tiercheck/internal/verify"
)

// Appender records tier interaction events as the system under test (or its
// instrumentation) reports them. Both the in-memory and the Redis-backed log
// satisfy it.
type Appender interface {
	Append(ctx context.Context, broker verify.BrokerID, kind verify.InteractionType, tp verify.TopicPartition) (verify.Event, error)
}
