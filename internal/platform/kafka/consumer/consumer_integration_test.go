//go:build integration

package consumer_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"tiercheck/internal/platform/kafka/admin"
	"tiercheck/internal/platform/kafka/consumer"
	"tiercheck/internal/verify"
	"tiercheck/pkg/testutil/containers"
)

type ConsumerSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	reader   *consumer.Reader
}

func TestConsumerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ConsumerSuite))
}

func (s *ConsumerSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.reader = consumer.New([]string{s.redpanda.Broker}, logger)
}

// produce creates the topic and writes n records with deterministic keys and
// values, returning the partition handle.
func (s *ConsumerSuite) produce(topic string, n int) verify.TopicPartition {
	ctx := context.Background()

	adm, err := admin.New([]string{s.redpanda.Broker})
	s.Require().NoError(err)
	defer adm.Close()
	s.Require().NoError(adm.EnsureTopic(ctx, topic, 1))

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.DefaultProduceTopic(topic),
	)
	s.Require().NoError(err)
	defer cl.Close()

	for i := 0; i < n; i++ {
		rec := &kgo.Record{
			Key:   []byte(fmt.Sprintf("key-%d", i)),
			Value: []byte(fmt.Sprintf("value-%d", i)),
		}
		s.Require().NoError(cl.ProduceSync(ctx, rec).FirstErr())
	}

	return verify.TopicPartition{Topic: topic, Partition: 0}
}

func (s *ConsumerSuite) TestConsumeWindowFromOffset() {
	tp := s.produce("consume-window", 20)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := s.reader.Consume(ctx, tp, 10, 5)
	s.Require().NoError(err)
	s.Require().Len(records, 10)

	for i, rec := range records {
		s.Equal(int64(5+i), rec.Offset, "records arrive in offset order")
		s.Equal([]byte(fmt.Sprintf("key-%d", 5+i)), rec.Key)
		s.Equal([]byte(fmt.Sprintf("value-%d", 5+i)), rec.Value)
	}
}

func (s *ConsumerSuite) TestConsumeFromStart() {
	tp := s.produce("consume-start", 5)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := s.reader.Consume(ctx, tp, 5, 0)
	s.Require().NoError(err)
	s.Require().Len(records, 5)
	s.Equal(int64(0), records[0].Offset)
}

func (s *ConsumerSuite) TestConsumeHonorsCancellation() {
	// Ask for more records than exist: the poll loop can only end via the
	// context.
	tp := s.produce("consume-cancel", 3)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.reader.Consume(ctx, tp, 100, 0)
	s.Require().Error(err)
}
