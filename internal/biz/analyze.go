package biz

import (
	"context"
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

// AnalysisRepo is the outbound half of the upload relay: it forwards a
// review CSV to the external analysis service and returns the raw rows and
// the upstream completion message.
type AnalysisRepo interface {
	Analyze(ctx context.Context, filename string, file io.Reader) ([]RawRecord, string, error)
	// Target reports the normalized base URL of the analysis service.
	Target() string
}

// AnalysisResult is one resolved analysis run.
type AnalysisResult struct {
	Records []AnalysisRecord `json:"records"`
	Summary Summary          `json:"summary"`
	Message string           `json:"message"`
}

// AnalyzeUseCase drives one analysis run: relay, normalize, aggregate.
type AnalyzeUseCase struct {
	repo AnalysisRepo
	log  *log.Helper
}

func NewAnalyzeUseCase(repo AnalysisRepo, logger log.Logger) *AnalyzeUseCase {
	return &AnalyzeUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Target reports where analysis requests are being relayed to.
func (uc *AnalyzeUseCase) Target() string { return uc.repo.Target() }

// Analyze forwards the uploaded CSV to the analysis service and turns the
// raw response into normalized records plus summary statistics. keyword is
// the collection context used as the app-name fallback. A successful call
// with zero records resolves to ErrEmptyResult, since there is nothing to
// render.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, filename string, file io.Reader, keyword string) (*AnalysisResult, error) {
	raw, message, err := uc.repo.Analyze(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	records := Normalize(raw, keyword)
	if len(records) == 0 {
		return nil, ErrEmptyResult()
	}
	uc.log.WithContext(ctx).Infof("analysis resolved: %d keyword rows", len(records))
	return &AnalysisResult{
		Records: records,
		Summary: Aggregate(records),
		Message: message,
	}, nil
}
