package biz

import (
	"encoding/json"
	"testing"
	"time"
)

func TestExportRoundTrip(t *testing.T) {
	records := []AnalysisRecord{{
		KeywordGroup:   "ads",
		Keyword:        "banner",
		TotalReviews:   100,
		AvgSentiment:   -0.5,
		PositiveCount:  10,
		NegativeCount:  80,
		NeutralCount:   10,
		SentimentLabel: SentimentNegative,
		AppName:        "com.example.app",
	}}

	data, err := ExportJSON(records)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var parsed []AnalysisRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if len(parsed) != 1 || parsed[0] != records[0] {
		t.Errorf("round trip = %+v, want %+v", parsed, records)
	}
}

func TestExportDefaultsAppName(t *testing.T) {
	data, err := ExportJSON([]AnalysisRecord{{Keyword: "ads"}})
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var parsed []AnalysisRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if parsed[0].AppName != DefaultAppName {
		t.Errorf("AppName = %q, want %q", parsed[0].AppName, DefaultAppName)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 11, 3, 9, 15, 42, 0, time.UTC)
	got := ExportFilename(now)
	want := "analysis_result_2025-11-03T09-15-42.json"
	if got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
}
