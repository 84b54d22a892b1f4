//go:build integration

package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tiercheck/internal/history"
	"tiercheck/internal/verify"
	"tiercheck/pkg/testutil/containers"
)

type RedisLogSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	log   *history.RedisLog
}

func TestRedisLogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLogSuite))
}

func (s *RedisLogSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.log = history.NewRedisLog(s.redis.Client, "tiercheck-test")
}

func (s *RedisLogSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisLogSuite) TestAppendAssignsMonotonicSequences() {
	ctx := context.Background()
	tp := verify.TopicPartition{Topic: "logs", Partition: 0}

	var last uint64
	for i := 0; i < 5; i++ {
		ev, err := s.log.Append(ctx, 1, verify.FetchSegment, tp)
		s.Require().NoError(err)
		s.Greater(ev.Sequence, last)
		last = ev.Sequence
	}

	ev, err := s.log.Append(ctx, 2, verify.FetchSegment, tp)
	s.Require().NoError(err)
	s.Equal(uint64(1), ev.Sequence, "sequences are per broker")
}

func (s *RedisLogSuite) TestLatestEventAndScoping() {
	ctx := context.Background()
	tp := verify.TopicPartition{Topic: "logs", Partition: 0}

	fence, err := s.log.Append(ctx, 1, verify.FetchSegment, tp)
	s.Require().NoError(err)
	for i := 0; i < 3; i++ {
		_, err := s.log.Append(ctx, 1, verify.FetchSegment, tp)
		s.Require().NoError(err)
	}

	view := s.log.HistoryFor(1)

	latest, found, err := view.LatestEvent(ctx, verify.FetchSegment, tp)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(uint64(4), latest.Sequence)

	scoped, err := view.EventsAfter(ctx, verify.FetchSegment, tp, &fence)
	s.Require().NoError(err)
	s.Require().Len(scoped, 3)
	for _, ev := range scoped {
		s.True(ev.After(fence))
	}
}

func (s *RedisLogSuite) TestEmptyHistory() {
	ctx := context.Background()
	tp := verify.TopicPartition{Topic: "logs", Partition: 0}
	view := s.log.HistoryFor(9)

	_, found, err := view.LatestEvent(ctx, verify.FetchTimeIndex, tp)
	s.Require().NoError(err)
	s.False(found)

	events, err := view.EventsAfter(ctx, verify.FetchTimeIndex, tp, nil)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *RedisLogSuite) TestSurvivesReconnect() {
	ctx := context.Background()
	tp := verify.TopicPartition{Topic: "logs", Partition: 0}

	_, err := s.log.Append(ctx, 1, verify.FetchOffsetIndex, tp)
	s.Require().NoError(err)

	// A fresh log over the same client and prefix sees the same history, as
	// a restarted harness process would.
	reopened := history.NewRedisLog(s.redis.Client, "tiercheck-test")
	latest, found, err := reopened.HistoryFor(1).LatestEvent(ctx, verify.FetchOffsetIndex, tp)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(uint64(1), latest.Sequence)

	ev, err := reopened.Append(ctx, 1, verify.FetchOffsetIndex, tp)
	s.Require().NoError(err)
	s.Equal(uint64(2), ev.Sequence, "sequence counter continues across restarts")
}
