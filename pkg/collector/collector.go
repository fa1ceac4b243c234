// Package collector gathers app reviews through the app-store bridge and
// synthesizes the review CSV consumed by the analysis pipeline.
package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/reviewalyze/reviewalyze/pkg/collector/config"
	"github.com/reviewalyze/reviewalyze/pkg/collector/store"
)

// csvHeader is the fixed column order of synthesized review CSVs.
var csvHeader = []string{"reviewId", "content", "score", "date", "app_id"}

// Collector drives one collection run: search apps for a keyword, pull
// their reviews under the rate limit, merge, write CSV.
type Collector struct {
	cfg     *config.Config
	store   *store.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

func New(cfg *config.Config, st *store.Client, log *logrus.Logger) *Collector {
	return &Collector{
		cfg:     cfg,
		store:   st,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate.RPS), 1),
		log:     log,
	}
}

// Run collects reviews for one keyword and writes
// <output>/reviews_<keyword>.csv. It returns the written path.
func (c *Collector) Run(ctx context.Context, keyword string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	apps, err := c.store.SearchApps(ctx, keyword, c.cfg.MaxApps)
	if err != nil {
		return "", fmt.Errorf("search apps for %q: %w", keyword, err)
	}
	if len(apps) == 0 {
		return "", fmt.Errorf("no apps found for keyword %q", keyword)
	}
	c.log.Infof("keyword %q: %d apps", keyword, len(apps))

	var merged []store.Review
	for _, app := range apps {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		reviews, err := c.store.Reviews(ctx, app.AppID, c.cfg.Reviews)
		if err != nil {
			// One unreachable app should not sink the whole run.
			c.log.Warnf("reviews for %s: %v", app.AppID, err)
			continue
		}
		c.log.Infof("app %s: %d reviews", app.AppID, len(reviews))
		merged = append(merged, reviews...)
	}
	if len(merged) == 0 {
		return "", fmt.Errorf("no reviews collected for keyword %q", keyword)
	}

	if err := os.MkdirAll(c.cfg.Output, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(c.cfg.Output, fmt.Sprintf("reviews_%s.csv", keyword))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, merged); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	c.log.Infof("wrote %d reviews to %s", len(merged), path)
	return path, nil
}

// RunAll collects every configured keyword; failures are logged and the
// remaining keywords still run.
func (c *Collector) RunAll(ctx context.Context) {
	start := time.Now()
	for _, keyword := range c.cfg.Keywords {
		if _, err := c.Run(ctx, keyword); err != nil {
			c.log.Errorf("collection for %q failed: %v", keyword, err)
		}
	}
	c.log.Infof("collection pass finished in %s", time.Since(start).Round(time.Second))
}

// WriteCSV writes reviews in the fixed column order with standard CSV
// quoting (fields containing separators or quotes get wrapped, internal
// quotes doubled).
func WriteCSV(w io.Writer, reviews []store.Review) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range reviews {
		record := []string{r.ReviewID, r.Content, strconv.Itoa(r.Score), r.Date, r.AppID}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
