package biz

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

// Error reasons of the relay boundary. The presentation side never
// re-derives meaning from status codes; it trusts these classifications.
const (
	ReasonMissingInput        = "MISSING_INPUT"
	ReasonAnalysisInProgress  = "ANALYSIS_IN_PROGRESS"
	ReasonUpstreamUnreachable = "UPSTREAM_UNREACHABLE"
	ReasonUpstreamParse       = "UPSTREAM_PARSE_ERROR"
	ReasonUpstream            = "UPSTREAM_ERROR"
	ReasonEmptyResult         = "EMPTY_RESULT"
)

// errorSnippetLimit caps the raw-body diagnostic attached to a parse
// failure, so a huge upstream response never becomes a huge error.
const errorSnippetLimit = 500

// ErrMissingInput reports a user-correctable missing file or keyword; no
// upstream request was made.
func ErrMissingInput(message string) *errors.Error {
	return errors.New(400, ReasonMissingInput, message)
}

// ErrAnalysisInProgress rejects a submission while another analysis is
// still in flight.
func ErrAnalysisInProgress() *errors.Error {
	return errors.New(409, ReasonAnalysisInProgress, "an analysis is already running; wait for it to finish")
}

// ErrUpstreamUnreachable reports a transport-level failure reaching the
// analysis service at target.
func ErrUpstreamUnreachable(target string, cause error) *errors.Error {
	e := errors.New(503, ReasonUpstreamUnreachable,
		fmt.Sprintf("analysis service unreachable at %s", target))
	md := map[string]string{
		"suggestion": "check that the analysis service is running and that its base URL is configured correctly",
	}
	if cause != nil {
		md["details"] = cause.Error()
	}
	return e.WithMetadata(md)
}

// ErrUpstreamParse reports a response body that was not valid JSON. status
// is the upstream HTTP status, or 500 when absent; the diagnostic snippet
// is truncated.
func ErrUpstreamParse(status int, body string) *errors.Error {
	if status == 0 {
		status = 500
	}
	return errors.New(status, ReasonUpstreamParse, "analysis service returned a malformed response").
		WithMetadata(map[string]string{"details": Truncate(body, errorSnippetLimit)})
}

// ErrUpstream surfaces a well-formed error response from the analysis
// service.
func ErrUpstream(status int, message, details string) *errors.Error {
	if message == "" {
		message = fmt.Sprintf("analysis service error (HTTP %d)", status)
	}
	e := errors.New(status, ReasonUpstream, message)
	if details != "" {
		e = e.WithMetadata(map[string]string{"details": details})
	}
	return e
}

// ErrEmptyResult marks a successful call that produced nothing to render.
func ErrEmptyResult() *errors.Error {
	return errors.New(422, ReasonEmptyResult, "the analysis returned no records")
}

// Truncate caps s at limit bytes.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
