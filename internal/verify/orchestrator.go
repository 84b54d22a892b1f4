package verify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tiercheck/internal/verify/metrics"
	"tiercheck/pkg/platform/sentinel"
)

// StepSpec describes one verification step: which partition window to read
// and what the tier content and interaction counts are expected to look like.
type StepSpec struct {
	Partition             TopicPartition
	FetchOffset           int64
	ExpectedTotalCount    int
	ExpectedFromTierCount int
	Expectations          FetchExpectationSet
}

// Validate rejects malformed steps before any I/O happens.
func (s StepSpec) Validate() error {
	if s.Partition.Topic == "" {
		return fmt.Errorf("step: empty topic: %w", sentinel.ErrInvalidConfig)
	}
	if s.Partition.Partition < 0 {
		return fmt.Errorf("step: negative partition %d: %w", s.Partition.Partition, sentinel.ErrInvalidConfig)
	}
	if s.FetchOffset < 0 {
		return fmt.Errorf("step: negative fetch offset %d: %w", s.FetchOffset, sentinel.ErrInvalidConfig)
	}
	if s.ExpectedTotalCount < 0 {
		return fmt.Errorf("step: negative expected total count %d: %w", s.ExpectedTotalCount, sentinel.ErrInvalidConfig)
	}
	if s.ExpectedFromTierCount < 0 {
		return fmt.Errorf("step: negative expected tier count %d: %w", s.ExpectedFromTierCount, sentinel.ErrInvalidConfig)
	}
	if s.ExpectedFromTierCount > s.ExpectedTotalCount {
		return fmt.Errorf("step: expected tier count %d exceeds total count %d: %w",
			s.ExpectedFromTierCount, s.ExpectedTotalCount, sentinel.ErrInvalidConfig)
	}
	return nil
}

// Describe writes a human-readable description of the step to w. The runner
// emits it before execution, independent of pass/fail, for audit trails.
func (s StepSpec) Describe(w io.Writer) {
	fmt.Fprintln(w, "consume-step:")
	fmt.Fprintf(w, "  topic-partition = %s\n", s.Partition)
	fmt.Fprintf(w, "  fetch-offset = %d\n", s.FetchOffset)
	fmt.Fprintf(w, "  expected-record-count = %d\n", s.ExpectedTotalCount)
	fmt.Fprintf(w, "  expected-records-from-tier = %d\n", s.ExpectedFromTierCount)
	fmt.Fprintf(w, "  source-broker = %d\n", s.Expectations.Broker)
	for _, t := range InteractionTypes {
		fmt.Fprintf(w, "  fetch-count[%s] = %s\n", t, s.Expectations.PolicyFor(t))
	}
}

// StepResult aggregates every outcome of one verification step. The step as
// a whole passes only if every outcome passed; failures are collected, never
// short-circuited.
type StepResult struct {
	ID          uuid.UUID
	Partition   TopicPartition
	FetchOffset int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Outcomes    []Outcome
	Passed      bool
}

// Failures returns the failed outcomes of the step.
func (r *StepResult) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Runner executes verification steps against the wired collaborators. It is
// synchronous: one step runs its states strictly in order with no internal
// parallelism, and the only suspension point is the consumption call.
type Runner struct {
	histories HistoryProvider
	consumer  Consumer
	tier      TierReader
	codec     Codec
	sink      io.Writer
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures optional Runner collaborators.
type Option func(*Runner)

// WithCodec overrides the codec applied to record keys and values.
func WithCodec(c Codec) Option {
	return func(r *Runner) { r.codec = c }
}

// WithSink directs the step descriptions to w.
func WithSink(w io.Writer) Option {
	return func(r *Runner) { r.sink = w }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics attaches verification metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner wires a verification runner. The codec defaults to StringCodec
// and descriptions are discarded unless a sink is supplied.
func NewRunner(histories HistoryProvider, consumer Consumer, tier TierReader, opts ...Option) *Runner {
	r := &Runner{
		histories: histories,
		consumer:  consumer,
		tier:      tier,
		codec:     StringCodec{},
		sink:      io.Discard,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one verification step: capture baseline, consume, check
// record correspondence, audit interaction counts. Reported failures are
// aggregated into the result; only configuration errors, history access
// failures and consumption errors (including cancellation) abort the step
// and surface as the returned error.
func (r *Runner) Run(ctx context.Context, spec StepSpec) (*StepResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec.Describe(r.sink)

	result := &StepResult{
		ID:          uuid.New(),
		Partition:   spec.Partition,
		FetchOffset: spec.FetchOffset,
		StartedAt:   time.Now(),
	}

	history := r.histories.HistoryFor(spec.Expectations.Broker)

	// The baseline for every interaction type must be in hand before
	// consumption starts: consuming may itself generate events, and those
	// must land inside the scope, not inside the fence.
	base, err := CaptureBaseline(ctx, history, spec.Partition)
	if err != nil {
		return nil, err
	}

	consumed, err := r.consumer.Consume(ctx, spec.Partition, spec.ExpectedTotalCount, spec.FetchOffset)
	if err != nil {
		return nil, fmt.Errorf("consume %d records from %s at offset %d: %w",
			spec.ExpectedTotalCount, spec.Partition, spec.FetchOffset, err)
	}

	stored, err := r.tier.RecordsFor(ctx, spec.Partition)
	if err != nil {
		return nil, fmt.Errorf("read tier snapshot for %s: %w", spec.Partition, err)
	}

	outcomes := []Outcome{
		CheckCorrespondence(spec.Partition, stored, consumed, spec.FetchOffset, spec.ExpectedFromTierCount, r.codec),
	}

	audits, err := AuditInteractions(ctx, history, base, spec.Expectations)
	if err != nil {
		return nil, err
	}
	outcomes = append(outcomes, audits...)

	result.Outcomes = outcomes
	result.Passed = true
	for _, o := range outcomes {
		if !o.Passed {
			result.Passed = false
		}
	}
	result.FinishedAt = time.Now()

	if r.metrics != nil {
		r.metrics.ObserveStep(result.Passed)
		for _, o := range audits {
			r.metrics.ObserveInteractions(o.Type.String(), o.ObservedCount)
		}
	}
	if result.Passed {
		r.logger.InfoContext(ctx, "verification step passed",
			"step_id", result.ID,
			"partition", spec.Partition.String(),
			"fetch_offset", spec.FetchOffset,
		)
	} else {
		r.logger.WarnContext(ctx, "verification step failed",
			"step_id", result.ID,
			"partition", spec.Partition.String(),
			"fetch_offset", spec.FetchOffset,
			"failures", len(result.Failures()),
		)
	}
	return result, nil
}
