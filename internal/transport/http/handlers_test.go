package httptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiercheck/internal/history"
	"tiercheck/internal/report"
	"tiercheck/internal/tier"
	"tiercheck/internal/verify"
)

// scriptedConsumer serves consumption from the tier snapshot and appends the
// configured events to the log while consuming, the way a broker would touch
// the second tier to serve a read.
type scriptedConsumer struct {
	log    *history.Log
	tier   *tier.Memory
	broker verify.BrokerID
	events map[verify.InteractionType]int
}

func (c *scriptedConsumer) Consume(ctx context.Context, tp verify.TopicPartition, count int, startOffset int64) ([]verify.ConsumedRecord, error) {
	for kind, n := range c.events {
		for i := 0; i < n; i++ {
			if _, err := c.log.Append(ctx, c.broker, kind, tp); err != nil {
				return nil, err
			}
		}
	}
	stored, err := c.tier.RecordsFor(ctx, tp)
	if err != nil {
		return nil, err
	}
	var delivered []verify.ConsumedRecord
	for _, rec := range stored {
		if rec.Offset < startOffset || len(delivered) >= count {
			continue
		}
		delivered = append(delivered, verify.ConsumedRecord{Offset: rec.Offset, Key: rec.Key, Value: rec.Value})
	}
	return delivered, nil
}

type harness struct {
	server *httptest.Server
	log    *history.Log
	tier   *tier.Memory
	store  *report.MemoryStore
}

func newHarness(t *testing.T, events map[verify.InteractionType]int) *harness {
	t.Helper()
	log := history.NewLog()
	tierStore := tier.NewMemory()
	store := report.NewMemoryStore()
	consumer := &scriptedConsumer{log: log, tier: tierStore, broker: 1, events: events}
	runner := verify.NewRunner(log, consumer, tierStore)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewHandler(runner, store, log, tierStore, logger)
	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)

	return &harness{server: server, log: log, tier: tierStore, store: store}
}

func (h *harness) post(t *testing.T, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(h.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (h *harness) seedTier(tp verify.TopicPartition, from, to int64) {
	for offset := from; offset < to; offset++ {
		h.tier.Add(tp, verify.StoredRecord{
			Offset: offset,
			Key:    []byte(fmt.Sprintf("key-%d", offset)),
			Value:  []byte(fmt.Sprintf("value-%d", offset)),
		})
	}
}

func TestHandleVerify_Pass(t *testing.T) {
	h := newHarness(t, map[verify.InteractionType]int{verify.FetchSegment: 1})
	h.seedTier(verify.TopicPartition{Topic: "logs", Partition: 0}, 100, 110)

	resp, body := h.post(t, "/verify", `{
		"topic": "logs",
		"partition": 0,
		"fetch_offset": 100,
		"expected_total_count": 10,
		"expected_from_tier_count": 10,
		"source_broker": 1,
		"fetch_counts": {"segment-fetch": {"op": "exactly", "count": 1}}
	}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["passed"])
	assert.NotEmpty(t, body["id"])
	outcomes, ok := body["outcomes"].([]any)
	require.True(t, ok)
	assert.Len(t, outcomes, 1+len(verify.InteractionTypes))
}

func TestHandleVerify_FailureStillReturnsResult(t *testing.T) {
	// No segment fetch happens during consumption, so exactly(1) fails, but
	// the step completes and its outcomes are reported.
	h := newHarness(t, nil)
	h.seedTier(verify.TopicPartition{Topic: "logs", Partition: 0}, 100, 110)

	resp, body := h.post(t, "/verify", `{
		"topic": "logs",
		"partition": 0,
		"fetch_offset": 100,
		"expected_total_count": 10,
		"expected_from_tier_count": 10,
		"source_broker": 1,
		"fetch_counts": {"segment-fetch": {"op": "exactly", "count": 1}}
	}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["passed"])
}

func TestHandleVerify_BadRequests(t *testing.T) {
	h := newHarness(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"unknown interaction type", `{"topic":"logs","fetch_counts":{"bogus":{"op":"exactly","count":1}}}`},
		{"unknown policy op", `{"topic":"logs","fetch_counts":{"segment-fetch":{"op":"roughly","count":1}}}`},
		{"negative count", `{"topic":"logs","fetch_counts":{"segment-fetch":{"op":"exactly","count":-1}}}`},
		{"empty topic", `{"partition":0,"fetch_offset":0}`},
		{"negative fetch offset", `{"topic":"logs","fetch_offset":-5}`},
		{"tier count exceeds total", `{"topic":"logs","expected_total_count":5,"expected_from_tier_count":6}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := h.post(t, "/verify", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleVerify_ResultIsPersisted(t *testing.T) {
	h := newHarness(t, nil)
	h.seedTier(verify.TopicPartition{Topic: "logs", Partition: 0}, 100, 110)

	resp, body := h.post(t, "/verify", `{
		"topic": "logs",
		"partition": 0,
		"fetch_offset": 100,
		"expected_total_count": 10,
		"expected_from_tier_count": 10,
		"source_broker": 1
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, ok := body["id"].(string)
	require.True(t, ok)

	getResp, err := http.Get(h.server.URL + "/steps/" + id)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var step map[string]any
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&step))
	assert.Equal(t, id, step["id"])
	assert.Equal(t, "logs", step["topic"])
}

func TestHandleListSteps(t *testing.T) {
	h := newHarness(t, nil)
	h.seedTier(verify.TopicPartition{Topic: "logs", Partition: 0}, 0, 5)

	for i := 0; i < 2; i++ {
		resp, _ := h.post(t, "/verify", `{
			"topic": "logs",
			"partition": 0,
			"fetch_offset": 0,
			"expected_total_count": 5,
			"expected_from_tier_count": 5,
			"source_broker": 1
		}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(h.server.URL + "/steps")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var steps []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&steps))
	assert.Len(t, steps, 2)
}

func TestHandleGetStep_Errors(t *testing.T) {
	h := newHarness(t, nil)

	resp, err := http.Get(h.server.URL + "/steps/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(h.server.URL + "/steps/00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleAppendEvent(t *testing.T) {
	h := newHarness(t, nil)

	resp, body := h.post(t, "/history/events", `{
		"broker": 1, "topic": "logs", "partition": 0, "type": "segment-fetch"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["sequence"])

	resp, body = h.post(t, "/history/events", `{
		"broker": 1, "topic": "logs", "partition": 0, "type": "offset-index-fetch"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), body["sequence"])

	tp := verify.TopicPartition{Topic: "logs", Partition: 0}
	latest, found, err := h.log.HistoryFor(1).LatestEvent(context.Background(), verify.FetchOffsetIndex, tp)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(2), latest.Sequence)
}

func TestHandleAppendEvent_UnknownType(t *testing.T) {
	h := newHarness(t, nil)

	resp, body := h.post(t, "/history/events", `{
		"broker": 1, "topic": "logs", "partition": 0, "type": "bogus"
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown interaction type")
}

func TestHandleAddTierRecords(t *testing.T) {
	h := newHarness(t, nil)

	resp, body := h.post(t, "/tier/records", `{
		"topic": "logs",
		"partition": 0,
		"records": [
			{"offset": 100, "key": "key-100", "value": "value-100"},
			{"offset": 101, "key": "key-101", "value": "value-101"}
		]
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), body["added"])

	records, err := h.tier.RecordsFor(context.Background(), verify.TopicPartition{Topic: "logs", Partition: 0})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []byte("value-101"), records[1].Value)
}

func TestHandleHealth(t *testing.T) {
	h := newHarness(t, nil)

	resp, err := http.Get(h.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
