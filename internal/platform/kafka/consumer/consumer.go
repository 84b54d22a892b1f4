package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"tiercheck/internal/verify"
)

// Reader consumes a bounded window of records from one partition. Each
// Consume call uses a short-lived franz-go client pinned to the requested
// partition and offset, so calls are independent and need no group
// coordination.
type Reader struct {
	brokers []string
	logger  *slog.Logger
}

// New constructs a reader against the given seed brokers.
func New(brokers []string, logger *slog.Logger) *Reader {
	return &Reader{brokers: brokers, logger: logger}
}

// Consume blocks until count records starting at startOffset have been
// delivered in offset order, the context is done, or a fetch fails. Errors
// are returned unchanged apart from wrapping; there are no retries.
func (r *Reader) Consume(ctx context.Context, tp verify.TopicPartition, count int, startOffset int64) ([]verify.ConsumedRecord, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(r.brokers...),
		kgo.ConsumePartitions(map[string]map[int32]kgo.Offset{
			tp.Topic: {tp.Partition: kgo.NewOffset().At(startOffset)},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client for %s: %w", tp, err)
	}
	defer cl.Close()

	records := make([]verify.ConsumedRecord, 0, count)
	for len(records) < count {
		fetches := cl.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil, fmt.Errorf("consume %s: client closed", tp)
		}
		for _, fe := range fetches.Errors() {
			return nil, fmt.Errorf("fetch %s-%d: %w", fe.Topic, fe.Partition, fe.Err)
		}
		fetches.EachRecord(func(rec *kgo.Record) {
			if len(records) >= count {
				return
			}
			records = append(records, verify.ConsumedRecord{
				Offset: rec.Offset,
				Key:    rec.Key,
				Value:  rec.Value,
			})
		})
	}

	r.logger.Debug("consumed record window",
		"partition", tp.String(),
		"start_offset", startOffset,
		"count", len(records),
	)
	return records, nil
}
