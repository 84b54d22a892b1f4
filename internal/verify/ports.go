package verify

import "context"

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// History gives read access to the ordered log of tier interaction events
// recorded for one broker. Writers (the live system under test) append
// concurrently with engine reads; every call observes an independent
// point-in-time snapshot and the engine never assumes two calls see the same
// state.
type History interface {
	// LatestEvent returns the most recent event of the given type for the
	// partition known at call time, or ok=false when none has been recorded.
	LatestEvent(ctx context.Context, t InteractionType, tp TopicPartition) (Event, bool, error)

	// EventsAfter returns the events of the given type for the partition
	// strictly after the reference event, ordered by sequence ascending. A
	// nil reference returns the full known sequence. Against an unmodified
	// history the call is idempotent.
	EventsAfter(ctx context.Context, t InteractionType, tp TopicPartition, after *Event) ([]Event, error)
}

// HistoryProvider resolves the event history recorded for one broker.
type HistoryProvider interface {
	HistoryFor(b BrokerID) History
}

// Consumer pulls a bounded window of records from the log. Consume blocks
// until count records starting at startOffset have been delivered, the
// context is done, or the fetch fails; errors are fatal to the step and are
// never retried.
type Consumer interface {
	Consume(ctx context.Context, tp TopicPartition, count int, startOffset int64) ([]ConsumedRecord, error)
}

// TierReader exposes the records physically resident in the second tier for
// a partition at call time. Ordering of the returned slice is unspecified.
type TierReader interface {
	RecordsFor(ctx context.Context, tp TopicPartition) ([]StoredRecord, error)
}

// Codec decodes raw key/value bytes into a comparable form before record
// comparison. It is applied symmetrically to stored and consumed records.
type Codec interface {
	Decode(data []byte) (string, error)
}

// StringCodec decodes bytes as plain text. The default codec.
type StringCodec struct{}

func (StringCodec) Decode(data []byte) (string, error) {
	return string(data), nil
}
