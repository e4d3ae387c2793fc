package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	api "github.com/checkdaily/checkdaily/internal/api/http"
	"github.com/checkdaily/checkdaily/internal/grading"
	"github.com/checkdaily/checkdaily/internal/provider"
	"github.com/checkdaily/checkdaily/internal/scenario"
)

type fakeProvider struct {
	content string
	err     error
}

func (f *fakeProvider) ChatCompletion(_ context.Context, _ *provider.Request) (*provider.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content}, nil
}

func newTestRouter(t *testing.T, fp *fakeProvider) http.Handler {
	t.Helper()
	cat, err := scenario.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	var llm *grading.LLMGrader
	if fp != nil {
		llm = &grading.LLMGrader{Provider: fp, Model: "gpt-4o"}
	}
	engine := grading.NewEngine(cat, llm, zap.NewNop())
	return api.NewRouter(engine, cat, []string{"http://localhost:3000"}, zap.NewNop())
}

func postGrade(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/grade", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGrade_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/grade", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestGrade_MissingAnswer(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := postGrade(t, h, `{"scenarioId":"kyc","prompt":"List documents."}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var e map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e["error"] != "Missing prompt/answer" {
		t.Fatalf("error = %q", e["error"])
	}
}

func TestGrade_EmptyBody(t *testing.T) {
	h := newTestRouter(t, nil)
	if rec := postGrade(t, h, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGrade_HeuristicSuccess(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := postGrade(t, h, `{"scenarioId":"disclosures","prompt":"Explain.","answer":"Exclusion and waiting period for pre-existing conditions."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var res grading.GradeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Score != 90 || res.Band != grading.BandGreen {
		t.Errorf("got score=%d band=%s, want 90/Green", res.Score, res.Band)
	}
	// flags and reasons must encode as arrays, not null
	if !strings.Contains(rec.Body.String(), `"flags":[]`) {
		t.Errorf("flags not encoded as empty array: %s", rec.Body.String())
	}
}

func TestGrade_PasteTelemetryPenalized(t *testing.T) {
	h := newTestRouter(t, nil)
	rec := postGrade(t, h, `{"scenarioId":"disclosures","prompt":"Explain.","answer":"Exclusion, waiting period, pre-existing.","pasted":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res grading.GradeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Score != 75 || res.Band != grading.BandAmber {
		t.Errorf("got score=%d band=%s, want 75/Amber", res.Score, res.Band)
	}
	if len(res.Flags) != 1 || res.Flags[0] != "Paste detected" {
		t.Errorf("flags = %v", res.Flags)
	}
}

func TestGrade_LLMPathSuccess(t *testing.T) {
	fp := &fakeProvider{content: `{"rubric":{"accuracy":2,"clarity":2,"empathy":2,"data":1,"nba":1},"feedback":"Good.","reason_codes":["Data Privacy Risk"]}`}
	h := newTestRouter(t, fp)
	rec := postGrade(t, h, `{"scenarioId":"privacy","prompt":"What next?","answer":"Ask them to use the secure portal."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res grading.GradeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Score != 80 || res.Feedback != "Good." {
		t.Errorf("result = %+v", res)
	}
}

func TestGrade_LLMTransportFailure(t *testing.T) {
	fp := &fakeProvider{err: errors.New("upstream down")}
	h := newTestRouter(t, fp)
	rec := postGrade(t, h, `{"scenarioId":"kyc","prompt":"p","answer":"a"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var e map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e["error"] != "Grading failed. Try again." {
		t.Fatalf("error = %q", e["error"])
	}
}

func TestGrade_LLMContentFailureReturns200(t *testing.T) {
	fp := &fakeProvider{content: "garbage"}
	h := newTestRouter(t, fp)
	rec := postGrade(t, h, `{"scenarioId":"kyc","prompt":"p","answer":"a"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (silent fallback)", rec.Code)
	}
	var res grading.GradeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Score != 50 || res.Feedback != "Parsed fallback." {
		t.Fatalf("fallback result = %+v", res)
	}
}

func TestListScenarios(t *testing.T) {
	h := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/scenarios", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("got %d scenarios, want 5", len(list))
	}
	for _, s := range list {
		if _, leaked := s["keywords"]; leaked {
			t.Fatalf("scenario %v leaked keyword table", s["id"])
		}
	}
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
