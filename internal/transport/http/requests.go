package httptransport

import (
	"fmt"

	"tiercheck/internal/verify"
	"tiercheck/pkg/platform/sentinel"
)

// verifyRequest is the JSON body of POST /verify. Fetch count policies are
// keyed by interaction type name; omitted types default to no expectation.
type verifyRequest struct {
	Topic                 string                   `json:"topic"`
	Partition             int32                    `json:"partition"`
	FetchOffset           int64                    `json:"fetch_offset"`
	ExpectedTotalCount    int                      `json:"expected_total_count"`
	ExpectedFromTierCount int                      `json:"expected_from_tier_count"`
	SourceBroker          int32                    `json:"source_broker"`
	FetchCounts           map[string]policyRequest `json:"fetch_counts"`
}

type policyRequest struct {
	Op    string `json:"op"`
	Count int    `json:"count"`
}

func (pr policyRequest) toPolicy() (verify.FetchCountPolicy, error) {
	switch pr.Op {
	case "", "none":
		return verify.NoExpectation(), nil
	case "exactly":
		return verify.Exactly(pr.Count)
	case "at_most":
		return verify.AtMost(pr.Count)
	case "at_least":
		return verify.AtLeast(pr.Count)
	default:
		return verify.FetchCountPolicy{}, fmt.Errorf("unknown policy op %q: %w", pr.Op, sentinel.ErrInvalidConfig)
	}
}

// interactionTypeByName resolves the wire name of an interaction type.
func interactionTypeByName(name string) (verify.InteractionType, bool) {
	for _, t := range verify.InteractionTypes {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

func (req verifyRequest) toSpec() (verify.StepSpec, error) {
	tp := verify.TopicPartition{Topic: req.Topic, Partition: req.Partition}

	policies := make(map[verify.InteractionType]verify.FetchCountPolicy, len(req.FetchCounts))
	for name, pr := range req.FetchCounts {
		t, ok := interactionTypeByName(name)
		if !ok {
			return verify.StepSpec{}, fmt.Errorf("unknown interaction type %q: %w", name, sentinel.ErrInvalidConfig)
		}
		policy, err := pr.toPolicy()
		if err != nil {
			return verify.StepSpec{}, fmt.Errorf("fetch count for %s: %w", name, err)
		}
		policies[t] = policy
	}

	expectations, err := verify.NewFetchExpectationSet(verify.BrokerID(req.SourceBroker), tp, policies)
	if err != nil {
		return verify.StepSpec{}, err
	}

	spec := verify.StepSpec{
		Partition:             tp,
		FetchOffset:           req.FetchOffset,
		ExpectedTotalCount:    req.ExpectedTotalCount,
		ExpectedFromTierCount: req.ExpectedFromTierCount,
		Expectations:          expectations,
	}
	if err := spec.Validate(); err != nil {
		return verify.StepSpec{}, err
	}
	return spec, nil
}

// appendEventRequest is the JSON body of POST /history/events, reported by
// the system under test when it touches the second tier.
type appendEventRequest struct {
	Broker    int32  `json:"broker"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Type      string `json:"type"`
}

// tierRecordsRequest is the JSON body of POST /tier/records, extending the
// tier snapshot as segments land in the second tier.
type tierRecordsRequest struct {
	Topic     string       `json:"topic"`
	Partition int32        `json:"partition"`
	Records   []tierRecord `json:"records"`
}

type tierRecord struct {
	Offset int64  `json:"offset"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}
