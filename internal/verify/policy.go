package verify

import (
	"fmt"

	"tiercheck/pkg/platform/sentinel"
)

type policyOp int

const (
	opNone policyOp = iota
	opExactly
	opAtMost
	opAtLeast
)

// FetchCountPolicy expresses an expectation on the number of interaction
// events observed during one verification step: no assertion, exactly n,
// at most n, or at least n. The zero value is NoExpectation.
type FetchCountPolicy struct {
	op policyOp
	n  int
}

// NoExpectation returns a policy that skips the assertion entirely.
func NoExpectation() FetchCountPolicy {
	return FetchCountPolicy{op: opNone}
}

// Exactly asserts the observed count equals n. Negative n is rejected at
// construction time.
func Exactly(n int) (FetchCountPolicy, error) {
	if n < 0 {
		return FetchCountPolicy{}, fmt.Errorf("exactly(%d): negative count: %w", n, sentinel.ErrInvalidConfig)
	}
	return FetchCountPolicy{op: opExactly, n: n}, nil
}

// AtMost asserts the observed count is less than or equal to n.
func AtMost(n int) (FetchCountPolicy, error) {
	if n < 0 {
		return FetchCountPolicy{}, fmt.Errorf("at most(%d): negative count: %w", n, sentinel.ErrInvalidConfig)
	}
	return FetchCountPolicy{op: opAtMost, n: n}, nil
}

// AtLeast asserts the observed count is greater than or equal to n.
func AtLeast(n int) (FetchCountPolicy, error) {
	if n < 0 {
		return FetchCountPolicy{}, fmt.Errorf("at least(%d): negative count: %w", n, sentinel.ErrInvalidConfig)
	}
	return FetchCountPolicy{op: opAtLeast, n: n}, nil
}

// Evaluate reports whether the observed count satisfies the policy. Pure;
// any non-negative count is valid input.
func (p FetchCountPolicy) Evaluate(observed int) bool {
	switch p.op {
	case opExactly:
		return observed == p.n
	case opAtMost:
		return observed <= p.n
	case opAtLeast:
		return observed >= p.n
	default:
		return true
	}
}

func (p FetchCountPolicy) String() string {
	switch p.op {
	case opExactly:
		return fmt.Sprintf("exactly %d", p.n)
	case opAtMost:
		return fmt.Sprintf("at most %d", p.n)
	case opAtLeast:
		return fmt.Sprintf("at least %d", p.n)
	default:
		return "none"
	}
}

// FetchExpectationSet binds each interaction type to its count policy for a
// single verification step, together with the source broker and target
// partition. Constructed once per step, immutable afterwards.
type FetchExpectationSet struct {
	Broker    BrokerID
	Partition TopicPartition
	policies  map[InteractionType]FetchCountPolicy
}

// NewFetchExpectationSet validates the supplied policies eagerly. Interaction
// types outside the closed set are rejected; types without an entry default
// to NoExpectation.
func NewFetchExpectationSet(broker BrokerID, tp TopicPartition, policies map[InteractionType]FetchCountPolicy) (FetchExpectationSet, error) {
	known := make(map[InteractionType]bool, len(InteractionTypes))
	for _, t := range InteractionTypes {
		known[t] = true
	}
	set := FetchExpectationSet{
		Broker:    broker,
		Partition: tp,
		policies:  make(map[InteractionType]FetchCountPolicy, len(InteractionTypes)),
	}
	for t, p := range policies {
		if !known[t] {
			return FetchExpectationSet{}, fmt.Errorf("unknown interaction type %s: %w", t, sentinel.ErrInvalidConfig)
		}
		set.policies[t] = p
	}
	return set, nil
}

// PolicyFor returns the policy bound to the given interaction type, or
// NoExpectation when none was supplied.
func (s FetchExpectationSet) PolicyFor(t InteractionType) FetchCountPolicy {
	return s.policies[t]
}
