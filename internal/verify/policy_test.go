package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiercheck/pkg/platform/sentinel"
)

func TestFetchCountPolicy_Evaluate(t *testing.T) {
	t.Run("no expectation always passes", func(t *testing.T) {
		p := NoExpectation()
		for _, observed := range []int{0, 1, 5, 1000} {
			assert.True(t, p.Evaluate(observed), "observed=%d", observed)
		}
	})

	t.Run("exactly", func(t *testing.T) {
		p, err := Exactly(3)
		require.NoError(t, err)
		assert.False(t, p.Evaluate(2))
		assert.True(t, p.Evaluate(3))
		assert.False(t, p.Evaluate(4))
	})

	t.Run("at most boundary", func(t *testing.T) {
		p, err := AtMost(3)
		require.NoError(t, err)
		assert.True(t, p.Evaluate(0))
		assert.True(t, p.Evaluate(3))
		assert.False(t, p.Evaluate(4))
	})

	t.Run("at least boundary", func(t *testing.T) {
		p, err := AtLeast(3)
		require.NoError(t, err)
		assert.False(t, p.Evaluate(2))
		assert.True(t, p.Evaluate(3))
		assert.True(t, p.Evaluate(100))
	})

	t.Run("zero count is valid", func(t *testing.T) {
		p, err := Exactly(0)
		require.NoError(t, err)
		assert.True(t, p.Evaluate(0))
		assert.False(t, p.Evaluate(1))
	})
}

func TestFetchCountPolicy_NegativeCountRejected(t *testing.T) {
	_, err := Exactly(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrInvalidConfig)

	_, err = AtMost(-5)
	assert.ErrorIs(t, err, sentinel.ErrInvalidConfig)

	_, err = AtLeast(-2)
	assert.ErrorIs(t, err, sentinel.ErrInvalidConfig)
}

func TestFetchCountPolicy_String(t *testing.T) {
	assert.Equal(t, "none", NoExpectation().String())

	p, err := Exactly(2)
	require.NoError(t, err)
	assert.Equal(t, "exactly 2", p.String())

	p, err = AtMost(7)
	require.NoError(t, err)
	assert.Equal(t, "at most 7", p.String())

	p, err = AtLeast(1)
	require.NoError(t, err)
	assert.Equal(t, "at least 1", p.String())
}

func TestFetchExpectationSet(t *testing.T) {
	tp := TopicPartition{Topic: "logs", Partition: 0}

	t.Run("missing types default to no expectation", func(t *testing.T) {
		exact, err := Exactly(1)
		require.NoError(t, err)
		set, err := NewFetchExpectationSet(1, tp, map[InteractionType]FetchCountPolicy{
			FetchSegment: exact,
		})
		require.NoError(t, err)

		assert.Equal(t, exact, set.PolicyFor(FetchSegment))
		assert.True(t, set.PolicyFor(FetchOffsetIndex).Evaluate(42))
		assert.True(t, set.PolicyFor(FetchTransactionIndex).Evaluate(0))
	})

	t.Run("unknown interaction type rejected", func(t *testing.T) {
		_, err := NewFetchExpectationSet(1, tp, map[InteractionType]FetchCountPolicy{
			InteractionType(99): NoExpectation(),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrInvalidConfig)
	})
}
