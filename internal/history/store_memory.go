package history

import (
	"context"
	"slices"
	"sync"

	"tiercheck/internal/verify"
)

type logKey struct {
	broker    verify.BrokerID
	partition verify.TopicPartition
	kind      verify.InteractionType
}

// Log is an append-only in-memory record of tier interaction events across
// all brokers. Writers (the system under test, or its test double) append
// concurrently with engine reads; sequences are assigned per broker under
// the write lock, so events for one (broker, partition, type) are totally
// ordered.
type Log struct {
	mu     sync.RWMutex
	seqs   map[verify.BrokerID]uint64
	events map[logKey][]verify.Event
}

// NewLog constructs an empty in-memory event log.
func NewLog() *Log {
	return &Log{
		seqs:   make(map[verify.BrokerID]uint64),
		events: make(map[logKey][]verify.Event),
	}
}

// Append records one interaction and returns the stored event with its
// assigned sequence.
func (l *Log) Append(_ context.Context, broker verify.BrokerID, kind verify.InteractionType, tp verify.TopicPartition) (verify.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs[broker]++
	ev := verify.Event{
		Type:      kind,
		Partition: tp,
		Broker:    broker,
		Sequence:  l.seqs[broker],
	}
	key := logKey{broker: broker, partition: tp, kind: kind}
	l.events[key] = append(l.events[key], ev)
	return ev, nil
}

// HistoryFor returns a read-only view of the log scoped to one broker,
// implementing verify.History.
func (l *Log) HistoryFor(b verify.BrokerID) verify.History {
	return &brokerView{log: l, broker: b}
}

type brokerView struct {
	log    *Log
	broker verify.BrokerID
}

func (v *brokerView) LatestEvent(_ context.Context, t verify.InteractionType, tp verify.TopicPartition) (verify.Event, bool, error) {
	v.log.mu.RLock()
	defer v.log.mu.RUnlock()
	events := v.log.events[logKey{broker: v.broker, partition: tp, kind: t}]
	if len(events) == 0 {
		return verify.Event{}, false, nil
	}
	return events[len(events)-1], true, nil
}

func (v *brokerView) EventsAfter(_ context.Context, t verify.InteractionType, tp verify.TopicPartition, after *verify.Event) ([]verify.Event, error) {
	v.log.mu.RLock()
	defer v.log.mu.RUnlock()
	events := v.log.events[logKey{broker: v.broker, partition: tp, kind: t}]
	if after == nil {
		// Snapshot copy: the returned slice must stay stable while the
		// underlying log keeps growing.
		return slices.Clone(events), nil
	}
	var scoped []verify.Event
	for _, ev := range events {
		if ev.After(*after) {
			scoped = append(scoped, ev)
		}
	}
	return scoped, nil
}
