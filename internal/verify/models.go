package verify

import "fmt"

// TopicPartition pairs a topic name with a partition index. It is used as a
// lookup key throughout the engine and must stay comparable.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func (tp TopicPartition) String() string {
	return fmt.Sprintf("%s-%d", tp.Topic, tp.Partition)
}

// BrokerID identifies the broker whose tier interactions are under audit.
type BrokerID int32

// InteractionType enumerates the kinds of second-tier interaction the engine
// tracks. The set is closed: extend it by adding a new constant and listing
// it in InteractionTypes, never by string matching.
type InteractionType int

const (
	FetchSegment InteractionType = iota
	FetchOffsetIndex
	FetchTimeIndex
	FetchTransactionIndex
)

// InteractionTypes lists every tracked interaction type. Baseline capture and
// auditing iterate this slice; its order is the report order.
var InteractionTypes = []InteractionType{
	FetchSegment,
	FetchOffsetIndex,
	FetchTimeIndex,
	FetchTransactionIndex,
}

func (t InteractionType) String() string {
	switch t {
	case FetchSegment:
		return "segment-fetch"
	case FetchOffsetIndex:
		return "offset-index-fetch"
	case FetchTimeIndex:
		return "time-index-fetch"
	case FetchTransactionIndex:
		return "transaction-index-fetch"
	default:
		return fmt.Sprintf("interaction-type(%d)", int(t))
	}
}

// Event is one recorded interaction between a broker and the second tier.
// Events for the same (broker, partition, type) are totally ordered by
// Sequence, which the history store assigns monotonically per broker on
// append. The engine only ever reads events.
type Event struct {
	Type      InteractionType
	Partition TopicPartition
	Broker    BrokerID
	Sequence  uint64
}

// After reports whether e occurred strictly after other.
func (e Event) After(other Event) bool {
	return e.Sequence > other.Sequence
}

// StoredRecord is a record physically resident in the second tier. Snapshot
// providers give no ordering guarantee; the correspondence checker owns the
// sort invariant.
type StoredRecord struct {
	Offset int64
	Key    []byte
	Value  []byte
}

// ConsumedRecord is a record delivered to a consumer, in strictly increasing
// offset order (guaranteed by the consumption collaborator).
type ConsumedRecord struct {
	Offset int64
	Key    []byte
	Value  []byte
}

// Check identifies which verification check produced an outcome.
type Check string

const (
	CorrespondenceCheck Check = "correspondence"
	InteractionsCheck   Check = "interactions"
)

// Violation names the invariant a failed check broke.
type Violation string

const (
	ViolationTierContentMissing Violation = "tier-content-missing"
	ViolationTooFewInTier       Violation = "too-few-in-tier"
	ViolationTooManyInTier      Violation = "too-many-in-tier"
	ViolationContentMismatch    Violation = "content-mismatch"
	ViolationInteractionCount   Violation = "interaction-count"
)

// Outcome is the result of one check within a verification step. A failure
// carries the violated invariant plus expected/observed context so it can be
// diagnosed without re-running the step. Type is meaningful only for
// InteractionsCheck outcomes.
type Outcome struct {
	Check     Check
	Passed    bool
	Violation Violation
	Partition TopicPartition
	Broker    BrokerID
	Type      InteractionType
	Expected  string
	Observed  string
	// ObservedCount is the scoped event count for InteractionsCheck outcomes.
	ObservedCount int
	Detail        string
}

func (o Outcome) String() string {
	if o.Passed {
		return fmt.Sprintf("%s: pass (%s)", o.Check, o.Partition)
	}
	return fmt.Sprintf("%s: %s (%s): expected %s, observed %s: %s",
		o.Check, o.Violation, o.Partition, o.Expected, o.Observed, o.Detail)
}
