package service

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/reviewalyze/reviewalyze/internal/biz"
)

// maxUploadMemory bounds in-memory buffering of the multipart form.
const maxUploadMemory = 32 << 20

// DashboardService is the HTTP boundary of the dashboard. It owns the
// three-state session machine: idle (no results), analyzing (one request
// in flight, gated by the busy flag), resolved (results or a classified
// error). The busy flag is the only mutable state shared with in-flight
// requests; the result buffer is swapped whole at resolution, never
// updated incrementally.
type DashboardService struct {
	uc  *biz.AnalyzeUseCase
	log *log.Helper

	busy atomic.Bool

	mu     sync.RWMutex
	result *biz.AnalysisResult
}

func NewDashboardService(uc *biz.AnalyzeUseCase, logger log.Logger) *DashboardService {
	return &DashboardService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// HandleAnalyze accepts the multipart review-CSV upload, relays it to the
// analysis service and resolves the session with the normalized result.
func (s *DashboardService) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		s.writeError(w, biz.ErrAnalysisInProgress())
		return
	}
	defer s.busy.Store(false)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, biz.ErrMissingInput("a multipart form with a review CSV file is required"))
		return
	}
	file, header, err := r.FormFile("reviews_data")
	if err != nil {
		s.writeError(w, biz.ErrMissingInput("the review data file is required (field reviews_data)"))
		return
	}
	defer file.Close()

	// Entering the analyzing state clears the previous result, so a slow
	// run never flashes stale data.
	s.setResult(nil)

	keyword := r.FormValue("keyword")
	result, err := s.uc.Analyze(r.Context(), header.Filename, file, keyword)
	if err != nil {
		s.log.Warnf("analysis failed: %v", err)
		s.writeError(w, err)
		return
	}
	s.setResult(result)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Records,
		"message": result.Message,
		"summary": result.Summary,
	})
}

// HandleResults returns the currently resolved records and their summary.
func (s *DashboardService) HandleResults(w http.ResponseWriter, r *http.Request) {
	result := s.currentResult()
	if result == nil {
		s.writeError(w, errors.New(404, "NO_RESULTS", "no analysis results available"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Records,
		"message": result.Message,
		"summary": result.Summary,
	})
}

// HandleExport serves the current records as a pretty-printed JSON
// download.
func (s *DashboardService) HandleExport(w http.ResponseWriter, r *http.Request) {
	result := s.currentResult()
	if result == nil {
		s.writeError(w, errors.New(404, "NO_RESULTS", "no analysis results available"))
		return
	}
	data, err := biz.ExportJSON(result.Records)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+biz.ExportFilename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// compareRequest carries explicit apps and/or ungrouped records to
// synthesize a comparison from.
type compareRequest struct {
	Apps    []biz.AppSummary     `json:"apps"`
	Records []biz.AnalysisRecord `json:"records"`
}

// HandleCompare synthesizes comparison entries and the variant-cell table
// from the posted app summaries. With neither apps nor records in the
// request, the current session records are compared.
func (s *DashboardService) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, biz.ErrMissingInput("the comparison request body must be JSON"))
		return
	}
	if len(req.Apps) == 0 && len(req.Records) == 0 {
		if result := s.currentResult(); result != nil {
			req.Records = result.Records
		}
	}
	if len(req.Apps) == 0 && len(req.Records) == 0 {
		s.writeError(w, biz.ErrMissingInput("nothing to compare: supply apps or analysis records"))
		return
	}
	entries := biz.Synthesize(req.Apps, req.Records)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"entries": entries,
		"table":   biz.BuildTable(entries),
	})
}

// HandleHealth reports liveness and the configured upstream target.
func (s *DashboardService) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"upstream":  s.uc.Target(),
		"analyzing": s.busy.Load(),
	})
}

func (s *DashboardService) setResult(result *biz.AnalysisResult) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
}

func (s *DashboardService) currentResult() *biz.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

func (s *DashboardService) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Errorf("write response: %v", err)
	}
}

// writeError converts any failure into the normalized error envelope.
// Raw transport errors never reach the client; everything is classified
// at the relay boundary first.
func (s *DashboardService) writeError(w http.ResponseWriter, err error) {
	e := errors.FromError(err)
	body := map[string]any{"error": e.Message}
	if d := e.Metadata["details"]; d != "" {
		body["details"] = d
	}
	if sg := e.Metadata["suggestion"]; sg != "" {
		body["suggestion"] = sg
	}
	status := int(e.Code)
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}
	s.writeJSON(w, status, body)
}
