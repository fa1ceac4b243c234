package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/reviewalyze/reviewalyze/internal/biz"
	"github.com/reviewalyze/reviewalyze/internal/conf"
)

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultFileField = "reviews_data"
	defaultTimeout   = 3 * time.Minute
)

// AnalysisClient talks to the external analysis service. The service is an
// opaque collaborator: this client does protocol translation and error
// classification, nothing else.
type AnalysisClient struct {
	baseURL   string
	fileField string
	client    *http.Client
	log       *log.Helper
}

var _ biz.AnalysisRepo = (*AnalysisClient)(nil)

func NewAnalysisClient(c *conf.Upstream, logger log.Logger) *AnalysisClient {
	baseURL := defaultBaseURL
	fileField := defaultFileField
	timeout := defaultTimeout
	if c != nil {
		if c.BaseUrl != "" {
			baseURL = NormalizeBaseURL(c.BaseUrl)
		}
		if c.FileField != "" {
			fileField = c.FileField
		}
		if c.Timeout != "" {
			if d, err := time.ParseDuration(c.Timeout); err == nil {
				timeout = d
			}
		}
	}
	return &AnalysisClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		fileField: fileField,
		client:    &http.Client{Timeout: timeout},
		log:       log.NewHelper(logger),
	}
}

// NormalizeBaseURL prepends https:// when the configured value lacks a
// URI scheme.
func NormalizeBaseURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// Target reports the normalized base URL, for health reporting and error
// detail.
func (c *AnalysisClient) Target() string { return c.baseURL }

// envelope is the JSON shape the analysis service responds with, success
// and failure fields overlaid.
type envelope struct {
	Success bool            `json:"success"`
	Data    []biz.RawRecord `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

// Analyze forwards the file bytes and name unchanged to the service's
// /analyze endpoint and classifies the outcome. The response body is read
// as text exactly once before any parse attempt.
func (c *AnalysisClient) Analyze(ctx context.Context, filename string, file io.Reader) ([]biz.RawRecord, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(c.fileField, filename)
	if err != nil {
		return nil, "", fmt.Errorf("build multipart request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy upload into request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart request: %w", err)
	}

	target := c.baseURL + "/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.WithContext(ctx).Infof("forwarding %s to %s", filename, target)
	res, err := c.client.Do(req)
	if err != nil {
		// Connection refused, DNS failure, timeout: the service itself is
		// not answering.
		return nil, "", biz.ErrUpstreamUnreachable(c.baseURL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", biz.ErrUpstreamUnreachable(c.baseURL, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.WithContext(ctx).Warnf("upstream response is not JSON (status %d)", res.StatusCode)
		return nil, "", biz.ErrUpstreamParse(res.StatusCode, string(body))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, "", biz.ErrUpstream(res.StatusCode, env.Error, env.Details)
	}

	message := env.Message
	if message == "" {
		message = "분석이 완료되었습니다."
	}
	return env.Data, message, nil
}
