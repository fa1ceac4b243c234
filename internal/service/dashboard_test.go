package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/reviewalyze/reviewalyze/internal/biz"
)

type mockAnalysisRepo struct {
	raw []biz.RawRecord
	err error
}

func (m *mockAnalysisRepo) Analyze(ctx context.Context, filename string, file io.Reader) ([]biz.RawRecord, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.raw, "분석이 완료되었습니다.", nil
}

func (m *mockAnalysisRepo) Target() string { return "http://analysis.test" }

func newTestService(repo biz.AnalysisRepo) *DashboardService {
	return NewDashboardService(biz.NewAnalyzeUseCase(repo, log.DefaultLogger), log.DefaultLogger)
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleAnalyzeMissingFile(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	body, contentType := multipartUpload(t, "wrong_field", "reviews.csv", "data")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.HandleAnalyze(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error envelope missing")
	}
}

func TestHandleAnalyzeSuccessAndExport(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{raw: []biz.RawRecord{
		{"keyword": "ads", "total_reviews": float64(5), "avg_sentiment": -0.3},
	}})
	body, contentType := multipartUpload(t, "reviews_data", "reviews.csv", "reviewId,content\n1,nice")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.HandleAnalyze(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool                 `json:"success"`
		Data    []biz.AnalysisRecord `json:"data"`
		Message string               `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Message == "" {
		t.Errorf("envelope = %+v", resp)
	}

	// The resolved run is exportable.
	w = httptest.NewRecorder()
	s.HandleExport(w, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "analysis_result_") || !strings.Contains(cd, ".json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleAnalyzeBusyGate(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	s.busy.Store(true)

	body, contentType := multipartUpload(t, "reviews_data", "reviews.csv", "data")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.HandleAnalyze(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 while analyzing", w.Code)
	}
}

func TestHandleAnalyzeFailureClearsResults(t *testing.T) {
	// Empty upstream data resolves to an error and the stale results are
	// gone: no old records can flash after a new run starts.
	failing := newTestService(&mockAnalysisRepo{})
	failing.setResult(&biz.AnalysisResult{Records: []biz.AnalysisRecord{{Keyword: "old"}}})
	body, contentType := multipartUpload(t, "reviews_data", "reviews.csv", "data")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	failing.HandleAnalyze(w, req)

	if w.Code != 422 {
		t.Fatalf("status = %d, want 422 empty result", w.Code)
	}
	if failing.currentResult() != nil {
		t.Error("stale results survived a failed run")
	}
}

func TestHandleResultsIdle(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	w := httptest.NewRecorder()
	s.HandleResults(w, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when idle", w.Code)
	}
}

func TestHandleCompare(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	payload := `{"apps":[{"app_name":"a","keyword_groups":{"ads":{"avg_sentiment":0.5,"total_reviews":10,"sentiment_label":"positive"}}}]}`

	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(payload))
	w := httptest.NewRecorder()
	s.HandleCompare(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Entries []biz.ComparisonEntry `json:"entries"`
		Table   []biz.TableRow        `json:"table"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Entries) != 1 || len(resp.Table) != 7 {
		t.Errorf("entries = %d, table rows = %d", len(resp.Entries), len(resp.Table))
	}
}

func TestHandleCompareNothingToCompare(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	s.HandleCompare(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleCompareFallsBackToSessionRecords(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	s.setResult(&biz.AnalysisResult{Records: []biz.AnalysisRecord{
		{KeywordGroup: "ads", Keyword: "ads", TotalReviews: 10, AppName: "com.example.app"},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	s.HandleCompare(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Entries []biz.ComparisonEntry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].AppName != "com.example.app" {
		t.Errorf("entries = %+v", resp.Entries)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestService(&mockAnalysisRepo{})
	w := httptest.NewRecorder()
	s.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["upstream"] != "http://analysis.test" {
		t.Errorf("upstream = %v", resp["upstream"])
	}
}
