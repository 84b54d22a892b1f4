package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tiercheck/internal/history"
	"tiercheck/internal/report"
	"tiercheck/internal/verify"
	"tiercheck/pkg/platform/sentinel"
)

// Runner executes one verification step. Satisfied by *verify.Runner.
type Runner interface {
	Run(ctx context.Context, spec verify.StepSpec) (*verify.StepResult, error)
}

// TierWriter extends the tier snapshot as the system under test uploads
// segments. Satisfied by *tier.Memory.
type TierWriter interface {
	Add(tp verify.TopicPartition, records ...verify.StoredRecord)
}

// Handler is the thin HTTP layer over the verification runner, the event
// history, the tier snapshot and the step result store. Transport concerns
// only; verification logic stays in internal/verify.
type Handler struct {
	runner   Runner
	store    report.Store
	appender history.Appender
	tier     TierWriter
	logger   *slog.Logger
}

// NewHandler wires the HTTP handler with its dependencies.
func NewHandler(runner Runner, store report.Store, appender history.Appender, tier TierWriter, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, store: store, appender: appender, tier: tier, logger: logger}
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	spec, err := req.toSpec()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.runner.Run(r.Context(), spec)
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "verification step aborted",
			"partition", spec.Partition.String(),
			"fetch_offset", spec.FetchOffset,
			"error", err,
		)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := h.store.Save(r.Context(), result); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to persist step result",
			"step_id", result.ID,
			"error", err,
		)
	}

	writeJSON(w, http.StatusOK, toStepResponse(result))
}

func (h *Handler) handleListSteps(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list steps")
		return
	}
	resp := make([]stepResponse, 0, len(results))
	for _, result := range results {
		resp = append(resp, toStepResponse(result))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetStep(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed step id")
		return
	}
	result, err := h.store.Get(r.Context(), id)
	if errors.Is(err, sentinel.ErrNotFound) {
		writeError(w, http.StatusNotFound, "step not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load step")
		return
	}
	writeJSON(w, http.StatusOK, toStepResponse(result))
}

func (h *Handler) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	var req appendEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	kind, ok := interactionTypeByName(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown interaction type "+req.Type)
		return
	}
	tp := verify.TopicPartition{Topic: req.Topic, Partition: req.Partition}
	ev, err := h.appender.Append(r.Context(), verify.BrokerID(req.Broker), kind, tp)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to append event",
			"partition", tp.String(),
			"type", kind.String(),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "failed to append event")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"sequence": ev.Sequence})
}

func (h *Handler) handleAddTierRecords(w http.ResponseWriter, r *http.Request) {
	var req tierRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	tp := verify.TopicPartition{Topic: req.Topic, Partition: req.Partition}
	records := make([]verify.StoredRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		records = append(records, verify.StoredRecord{
			Offset: rec.Offset,
			Key:    []byte(rec.Key),
			Value:  []byte(rec.Value),
		})
	}
	h.tier.Add(tp, records...)
	writeJSON(w, http.StatusCreated, map[string]int{"added": len(records)})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
