package biz

import (
	"fmt"
	"math"
	"net/url"
	"sort"
)

// GroupStat is the aggregated sentiment of one keyword group inside an
// app's comparison data.
type GroupStat struct {
	AvgSentiment   float64 `json:"avg_sentiment"`
	TotalReviews   int     `json:"total_reviews"`
	SentimentLabel string  `json:"sentiment_label"`
}

// AppSummary is the per-app input of a comparison: heterogeneous,
// partially-optional fields as supplied by the caller.
type AppSummary struct {
	AppName                string               `json:"app_name"`
	AppIcon                string               `json:"app_icon,omitempty"`
	AISummary              string               `json:"ai_summary,omitempty"`
	ReviewSummary          string               `json:"review_summary,omitempty"`
	FeatureRecommendations []string             `json:"feature_recommendations,omitempty"`
	KeywordGroups          map[string]GroupStat `json:"keyword_groups,omitempty"`
}

// ChartSlice is one slice of a per-app sentiment pie chart.
type ChartSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// GroupBar is one keyword group of a per-app bar chart, its review count
// apportioned across the three polarities.
type GroupBar struct {
	Group    string  `json:"group"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// ComparisonEntry is the rendering-ready per-app aggregate.
type ComparisonEntry struct {
	AppName                string               `json:"app_name"`
	AppIcon                string               `json:"app_icon"`
	AISummary              string               `json:"ai_summary,omitempty"`
	ReviewSummary          string               `json:"review_summary"`
	FeatureRecommendations []string             `json:"feature_recommendations,omitempty"`
	KeywordGroups          map[string]GroupStat `json:"keyword_groups"`
	TotalReviews           int                  `json:"total_reviews"`
	AverageSentiment       float64              `json:"average_sentiment"`
	DominantSentiment      string               `json:"dominant_sentiment"`
	PositiveRatio          int                  `json:"positive_ratio"`
	Pie                    []ChartSlice         `json:"pie"`
	Bars                   []GroupBar           `json:"bars"`
}

// apportionRatios fabricates a positive/neutral/negative split of a
// group's review count from its sentiment label alone. Polarity counts are
// not guaranteed present per group, so the charts built from these ratios
// are a labeled approximation, never an exact histogram.
var apportionRatios = map[string][3]float64{
	SentimentPositive: {0.60, 0.20, 0.20},
	SentimentNegative: {0.20, 0.20, 0.60},
	SentimentNeutral:  {0.25, 0.50, 0.25},
}

// PlaceholderIcon returns the deterministic placeholder image URI for an
// app without an icon.
func PlaceholderIcon(appName string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/128/128", url.PathEscape(appName))
}

// Synthesize produces comparison-ready entries from zero or more app
// summaries. When no explicit app is present but ungrouped analysis
// records are, exactly one synthetic entry is built from those records,
// grouped by keyword group.
func Synthesize(apps []AppSummary, ungrouped []AnalysisRecord) []ComparisonEntry {
	if len(apps) == 0 && len(ungrouped) > 0 {
		apps = []AppSummary{appFromRecords(ungrouped)}
	}
	entries := make([]ComparisonEntry, 0, len(apps))
	for _, app := range apps {
		entries = append(entries, synthesizeApp(app))
	}
	return entries
}

func synthesizeApp(app AppSummary) ComparisonEntry {
	groups := sortedGroupNames(app.KeywordGroups)

	var totalReviews int
	var sentimentSum float64
	for _, name := range groups {
		g := app.KeywordGroups[name]
		totalReviews += g.TotalReviews
		sentimentSum += g.AvgSentiment
	}
	// Unweighted mean of the group scores. totalReviews is count-weighted
	// while this is not; that asymmetry is the observed behavior being
	// preserved, not an accident of this implementation.
	var avgSentiment float64
	if len(groups) > 0 {
		avgSentiment = sentimentSum / float64(len(groups))
	}
	label := ClassifySentiment(avgSentiment)

	// Positive share weighted by each group's portion of the reviews,
	// keyed off the group label alone.
	var positiveShare float64
	pie := []ChartSlice{{Name: SentimentPositive}, {Name: SentimentNegative}, {Name: SentimentNeutral}}
	bars := make([]GroupBar, 0, len(groups))
	for _, name := range groups {
		g := app.KeywordGroups[name]
		ratios, ok := apportionRatios[g.SentimentLabel]
		if !ok {
			ratios = apportionRatios[SentimentNeutral]
		}
		reviews := float64(g.TotalReviews)
		bar := GroupBar{
			Group:    name,
			Positive: reviews * ratios[0],
			Neutral:  reviews * ratios[1],
			Negative: reviews * ratios[2],
		}
		bars = append(bars, bar)
		pie[0].Value += bar.Positive
		pie[1].Value += bar.Negative
		pie[2].Value += bar.Neutral
		if totalReviews > 0 && g.SentimentLabel == SentimentPositive {
			positiveShare += reviews / float64(totalReviews)
		}
	}

	entry := ComparisonEntry{
		AppName:                app.AppName,
		AppIcon:                app.AppIcon,
		AISummary:              app.AISummary,
		ReviewSummary:          app.ReviewSummary,
		FeatureRecommendations: app.FeatureRecommendations,
		KeywordGroups:          app.KeywordGroups,
		TotalReviews:           totalReviews,
		AverageSentiment:       avgSentiment,
		DominantSentiment:      label,
		PositiveRatio:          int(math.Round(positiveShare * 100)),
		Pie:                    pie,
		Bars:                   bars,
	}
	if entry.KeywordGroups == nil {
		entry.KeywordGroups = map[string]GroupStat{}
	}
	if entry.AppIcon == "" {
		entry.AppIcon = PlaceholderIcon(app.AppName)
	}
	if entry.ReviewSummary == "" {
		entry.ReviewSummary = fmt.Sprintf("%s (%.3f) · %d reviews", label, avgSentiment, totalReviews)
	}
	return entry
}

// appFromRecords folds ungrouped analysis records into a single synthetic
// app summary, one group stat per keyword group.
func appFromRecords(records []AnalysisRecord) AppSummary {
	type acc struct {
		reviews int
		sum     float64
		n       int
	}
	byGroup := make(map[string]*acc, len(records))
	appName := DefaultAppName
	for i, r := range records {
		if i == 0 && r.AppName != "" {
			appName = r.AppName
		}
		a := byGroup[r.KeywordGroup]
		if a == nil {
			a = &acc{}
			byGroup[r.KeywordGroup] = a
		}
		a.reviews += r.TotalReviews
		a.sum += r.AvgSentiment
		a.n++
	}
	groups := make(map[string]GroupStat, len(byGroup))
	for name, a := range byGroup {
		avg := a.sum / float64(a.n)
		groups[name] = GroupStat{
			AvgSentiment:   avg,
			TotalReviews:   a.reviews,
			SentimentLabel: ClassifySentiment(avg),
		}
	}
	return AppSummary{AppName: appName, KeywordGroups: groups}
}

func sortedGroupNames(groups map[string]GroupStat) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
