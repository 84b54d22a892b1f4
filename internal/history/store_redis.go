package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tiercheck/internal/verify"
)

// RedisLog persists the interaction event log in Redis so that harness
// processes observing the same system under test share one history. Each
// (broker, partition, type) triple maps to one Redis list; per-broker
// sequences come from a Redis counter, so ordering survives process
// restarts.
type RedisLog struct {
	client *redis.Client
	prefix string
}

// NewRedisLog wraps an existing Redis client. The prefix namespaces all keys
// so several harness runs can share one Redis instance.
func NewRedisLog(client *redis.Client, prefix string) *RedisLog {
	if prefix == "" {
		prefix = "tiercheck"
	}
	return &RedisLog{client: client, prefix: prefix}
}

type redisEvent struct {
	Type      int    `json:"type"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Broker    int32  `json:"broker"`
	Sequence  uint64 `json:"sequence"`
}

func (l *RedisLog) seqKey(broker verify.BrokerID) string {
	return fmt.Sprintf("%s:history:seq:%d", l.prefix, broker)
}

func (l *RedisLog) eventsKey(broker verify.BrokerID, tp verify.TopicPartition, kind verify.InteractionType) string {
	return fmt.Sprintf("%s:history:events:%d:%s:%d:%d", l.prefix, broker, tp.Topic, tp.Partition, int(kind))
}

// Append records one interaction and returns the stored event with its
// assigned sequence.
func (l *RedisLog) Append(ctx context.Context, broker verify.BrokerID, kind verify.InteractionType, tp verify.TopicPartition) (verify.Event, error) {
	seq, err := l.client.Incr(ctx, l.seqKey(broker)).Result()
	if err != nil {
		return verify.Event{}, fmt.Errorf("next sequence for broker %d: %w", broker, err)
	}
	ev := verify.Event{
		Type:      kind,
		Partition: tp,
		Broker:    broker,
		Sequence:  uint64(seq),
	}
	payload, err := json.Marshal(redisEvent{
		Type:      int(kind),
		Topic:     tp.Topic,
		Partition: tp.Partition,
		Broker:    int32(broker),
		Sequence:  ev.Sequence,
	})
	if err != nil {
		return verify.Event{}, fmt.Errorf("marshal event: %w", err)
	}
	if err := l.client.RPush(ctx, l.eventsKey(broker, tp, kind), payload).Err(); err != nil {
		return verify.Event{}, fmt.Errorf("append event: %w", err)
	}
	return ev, nil
}

// HistoryFor returns a read-only view of the log scoped to one broker,
// implementing verify.History.
func (l *RedisLog) HistoryFor(b verify.BrokerID) verify.History {
	return &redisBrokerView{log: l, broker: b}
}

type redisBrokerView struct {
	log    *RedisLog
	broker verify.BrokerID
}

func (v *redisBrokerView) load(ctx context.Context, t verify.InteractionType, tp verify.TopicPartition) ([]verify.Event, error) {
	raw, err := v.log.client.LRange(ctx, v.log.eventsKey(v.broker, tp, t), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s events for %s: %w", t, tp, err)
	}
	events := make([]verify.Event, 0, len(raw))
	for _, item := range raw {
		var re redisEvent
		if err := json.Unmarshal([]byte(item), &re); err != nil {
			return nil, fmt.Errorf("decode stored event: %w", err)
		}
		events = append(events, verify.Event{
			Type:      verify.InteractionType(re.Type),
			Partition: verify.TopicPartition{Topic: re.Topic, Partition: re.Partition},
			Broker:    verify.BrokerID(re.Broker),
			Sequence:  re.Sequence,
		})
	}
	// Concurrent writers can interleave list pushes; sequence order is the
	// contract, so restore it.
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j-1].Sequence > events[j].Sequence; j-- {
			events[j-1], events[j] = events[j], events[j-1]
		}
	}
	return events, nil
}

func (v *redisBrokerView) LatestEvent(ctx context.Context, t verify.InteractionType, tp verify.TopicPartition) (verify.Event, bool, error) {
	events, err := v.load(ctx, t, tp)
	if err != nil {
		return verify.Event{}, false, err
	}
	if len(events) == 0 {
		return verify.Event{}, false, nil
	}
	return events[len(events)-1], true, nil
}

func (v *redisBrokerView) EventsAfter(ctx context.Context, t verify.InteractionType, tp verify.TopicPartition, after *verify.Event) ([]verify.Event, error) {
	events, err := v.load(ctx, t, tp)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return events, nil
	}
	var scoped []verify.Event
	for _, ev := range events {
		if ev.After(*after) {
			scoped = append(scoped, ev)
		}
	}
	return scoped, nil
}
