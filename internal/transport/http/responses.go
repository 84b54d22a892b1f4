package httptransport

import (
	"time"

	"tiercheck/internal/verify"
)

type stepResponse struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	Partition   int32             `json:"partition"`
	FetchOffset int64             `json:"fetch_offset"`
	Passed      bool              `json:"passed"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Outcomes    []outcomeResponse `json:"outcomes"`
}

type outcomeResponse struct {
	Check           string `json:"check"`
	Passed          bool   `json:"passed"`
	Violation       string `json:"violation,omitempty"`
	InteractionType string `json:"interaction_type,omitempty"`
	Expected        string `json:"expected,omitempty"`
	Observed        string `json:"observed,omitempty"`
	ObservedCount   int    `json:"observed_count,omitempty"`
	Detail          string `json:"detail,omitempty"`
}

func toStepResponse(result *verify.StepResult) stepResponse {
	resp := stepResponse{
		ID:          result.ID.String(),
		Topic:       result.Partition.Topic,
		Partition:   result.Partition.Partition,
		FetchOffset: result.FetchOffset,
		Passed:      result.Passed,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
	}
	for _, o := range result.Outcomes {
		out := outcomeResponse{
			Check:     string(o.Check),
			Passed:    o.Passed,
			Violation: string(o.Violation),
			Expected:  o.Expected,
			Observed:  o.Observed,
			Detail:    o.Detail,
		}
		if o.Check == verify.InteractionsCheck {
			out.InteractionType = o.Type.String()
			out.ObservedCount = o.ObservedCount
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}
	return resp
}
