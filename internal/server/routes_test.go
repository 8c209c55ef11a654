package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreactor "github.com/berfenger/sen6xgen/internal/core/actor"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/util"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (http.Handler, *actor.ActorSystem) {
	cfg := util.LoadTestConfig()
	logger := util.TestLogger(cfg)
	as := actor.NewActorSystem()
	pid, err := as.Root.SpawnNamed(coreactor.NewGeneratorActorProps(cfg, logger), domain.ACTOR_ID_GENERATOR)
	require.NoError(t, err)
	srv := NewServer(cfg, as.Root, pid, logger)
	return srv.Handler, as
}

func do(h http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	h, as := newTestHandler(t)
	defer as.Shutdown()

	rec := do(h, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "health_check: OK", rec.Body.String())
}

func TestGenerateJSON(t *testing.T) {

	assert := assert.New(t)

	h, as := newTestHandler(t)
	defer as.Shutdown()

	rec := do(h, http.MethodPost, "/generate", "sen6x:\n  id: air\nbutton:\n  - platform: sen6x\n    device_reset: {}\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc struct {
		Hub struct {
			ID string `json:"id"`
		} `json:"hub"`
		Instructions []map[string]any `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal("air", doc.Hub.ID)
	assert.Len(doc.Instructions, 4)
	assert.Equal("set_device_reset_button", doc.Instructions[3]["method"])
}

func TestGenerateCPP(t *testing.T) {
	h, as := newTestHandler(t)
	defer as.Shutdown()

	rec := do(h, http.MethodPost, "/generate?format=cpp", "sen6x:\n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "App.register_component(sen6x_hub);")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = do(h, http.MethodPost, "/generate?format=xml", "sen6x:\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateViolations(t *testing.T) {

	assert := assert.New(t)

	h, as := newTestHandler(t)
	defer as.Shutdown()
	sub := SubscribeMetrics(as)
	defer as.EventStream.Unsubscribe(sub)

	before := testutil.ToFloat64(counterViolations.WithLabelValues(string(domain.ErrUnresolvedReference)))

	rec := do(h, http.MethodPost, "/generate", "sen6x:\n  pressure_source: nowhere\n")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Violations []domain.FieldError `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(domain.ErrUnresolvedReference, resp.Violations[0].Code)
	assert.Equal("sen6x.pressure_source", resp.Violations[0].Path)

	after := testutil.ToFloat64(counterViolations.WithLabelValues(string(domain.ErrUnresolvedReference)))
	assert.Equal(before+1, after)
}

func TestMetricsEndpoint(t *testing.T) {
	h, as := newTestHandler(t)
	defer as.Shutdown()
	sub := SubscribeMetrics(as)
	defer as.EventStream.Unsubscribe(sub)

	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/generate", "sen6x:\n").Code)

	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sen6xgen_builds_total{result="ok"}`)
}
