package verify

import (
	"context"
	"fmt"
)

// Baseline holds, per interaction type, the latest event that pre-existed the
// verification step. A nil entry means no event of that type had been
// recorded when the step began; the scope for that type is then the full
// history.
type Baseline map[InteractionType]*Event

// CaptureBaseline snapshots the latest event of every tracked interaction
// type. It must complete before consumption begins so events generated by
// the consumption itself stay out of the baseline.
func CaptureBaseline(ctx context.Context, history History, tp TopicPartition) (Baseline, error) {
	base := make(Baseline, len(InteractionTypes))
	for _, t := range InteractionTypes {
		ev, ok, err := history.LatestEvent(ctx, t, tp)
		if err != nil {
			return nil, fmt.Errorf("capture %s baseline for %s: %w", t, tp, err)
		}
		if ok {
			e := ev
			base[t] = &e
		} else {
			base[t] = nil
		}
	}
	return base, nil
}

// AuditInteractions evaluates, for every tracked interaction type, the count
// of events attributable to this step against the step's policy. The scope
// for a type is the set of events strictly after its baseline entry, which
// isolates one step's events even though the underlying history is a shared,
// continuously growing log. Every type is audited even after a failure; the
// returned error is reserved for history access failures, which are fatal.
func AuditInteractions(ctx context.Context, history History, base Baseline, exp FetchExpectationSet) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(InteractionTypes))
	for _, t := range InteractionTypes {
		scope, err := history.EventsAfter(ctx, t, exp.Partition, base[t])
		if err != nil {
			return nil, fmt.Errorf("scope %s events for %s: %w", t, exp.Partition, err)
		}

		policy := exp.PolicyFor(t)
		observed := len(scope)
		out := Outcome{
			Check:         InteractionsCheck,
			Partition:     exp.Partition,
			Broker:        exp.Broker,
			Type:          t,
			Expected:      policy.String(),
			Observed:      fmt.Sprintf("%d", observed),
			ObservedCount: observed,
		}
		if policy.Evaluate(observed) {
			out.Passed = true
		} else {
			out.Violation = ViolationInteractionCount
			out.Detail = fmt.Sprintf("%s requests from broker %d to the tier storage do not satisfy the policy for %s",
				t, exp.Broker, exp.Partition)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
