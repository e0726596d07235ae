package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID_AssignedAndLogged(t *testing.T) {
	a := newTestAPI(t, nil)

	rec := a.mustDo(http.MethodGet, "/healthz", nil, http.StatusOK)
	id := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, id)

	entries := a.logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, id, fields["request_id"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestRequestID_HonoursIncomingHeader(t *testing.T) {
	a := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(requestIDHeader))
}

func TestRecoverer_Returns500(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := &Server{log: zap.New(core), maxBody: 1024}
	h := s.requestID(s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("handler panic").Len())
}

func TestLimitBody_Returns413(t *testing.T) {
	a := newTestAPI(t, nil)

	huge := `{"name":"` + strings.Repeat("x", 128<<10) + `"}`
	rec := a.mustDo(http.MethodPost, "/api/leads", huge, http.StatusRequestEntityTooLarge)
	assert.Equal(t, "Request body too large", decode[errorBody](t, rec).Error)
}

func TestHealthz_ReportsDatabase(t *testing.T) {
	a := newTestAPI(t, nil)
	a.mustDo(http.MethodGet, "/healthz", nil, http.StatusOK)

	require.NoError(t, a.db.Close())
	rec := a.mustDo(http.MethodGet, "/healthz", nil, http.StatusServiceUnavailable)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestServer_OverRealHTTP(t *testing.T) {
	a := newTestAPI(t, nil)
	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/api/leads", "application/json", strings.NewReader(`{"name":"Dana"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `"name":"Dana"`)
}

func TestAI_DisabledReturnsFallback(t *testing.T) {
	a := newTestAPI(t, nil)

	lead := decode[idBody](t, a.mustDo(http.MethodPost, "/api/leads", map[string]any{"name": "Dana"}, http.StatusCreated))

	res := decode[intelligence.Result[intelligence.DealHealth]](t,
		a.mustDo(http.MethodPost, "/api/ai/deal-health", map[string]any{"leadId": lead.ID}, http.StatusOK))
	assert.True(t, res.Fallback)
	assert.Equal(t, "ai disabled", res.Error)
	assert.Equal(t, 50, res.Data.Score)

	a.mustDo(http.MethodPost, "/api/ai/dashboard-insights", nil, http.StatusOK)
	a.mustDo(http.MethodPost, "/api/ai/content-ideas", map[string]any{"topic": "pricing"}, http.StatusOK)
}

func TestAI_MissingRecordAndBadInput(t *testing.T) {
	a := newTestAPI(t, nil)

	a.mustDo(http.MethodPost, "/api/ai/nudge", map[string]any{"leadId": 42}, http.StatusNotFound)
	a.mustDo(http.MethodPost, "/api/ai/blockers", map[string]any{"projectId": 42}, http.StatusNotFound)
	a.mustDo(http.MethodPost, "/api/ai/prospects", map[string]any{"criteria": ""}, http.StatusBadRequest)
}

func TestAI_ApplyTaskSuggestion(t *testing.T) {
	a := newTestAPI(t, nil)

	project := decode[idBody](t, a.mustDo(http.MethodPost, "/api/projects", map[string]any{"name": "Site"}, http.StatusCreated))
	rec := a.mustDo(http.MethodPost, "/api/ai/apply-task-suggestion",
		map[string]any{"projectId": project.ID, "title": "Collect copy", "priority": "high"}, http.StatusCreated)
	assert.Contains(t, rec.Body.String(), `"title":"Collect copy"`)
}
