package biz

import (
	"encoding/json"
	"time"
)

// ExportJSON serializes the records as pretty-printed JSON for the
// "download results" action. app_name is always populated in the export,
// even when the record slipped through without one.
func ExportJSON(records []AnalysisRecord) ([]byte, error) {
	out := make([]AnalysisRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].AppName == "" {
			out[i].AppName = DefaultAppName
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ExportFilename builds the download file name from the moment of export:
// an ISO 8601 timestamp with ':' and '.' replaced by '-'.
func ExportFilename(now time.Time) string {
	return "analysis_result_" + now.UTC().Format("2006-01-02T15-04-05") + ".json"
}
