package biz

import "math"

// SentimentDistribution is the element-wise sum of the three polarity
// counters over a record set.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Summary holds the derived statistics over a set of normalized records.
type Summary struct {
	TotalReviews      int                   `json:"total_reviews"`
	AverageSentiment  float64               `json:"average_sentiment"`
	Distribution      SentimentDistribution `json:"sentiment_distribution"`
	DominantSentiment string                `json:"dominant_sentiment"`
	TopKeyword        *AnalysisRecord       `json:"top_keyword,omitempty"`
	PositiveRatio     int                   `json:"positive_ratio"`
}

// Aggregate computes summary statistics over a sequence of normalized
// records. The per-record invariant positive+negative+neutral ==
// total_reviews is NOT assumed: counts come from external data and the two
// sums are tracked independently.
func Aggregate(records []AnalysisRecord) Summary {
	var s Summary
	var sentimentSum float64
	for i := range records {
		r := &records[i]
		s.TotalReviews += r.TotalReviews
		sentimentSum += r.AvgSentiment
		s.Distribution.Positive += r.PositiveCount
		s.Distribution.Negative += r.NegativeCount
		s.Distribution.Neutral += r.NeutralCount
		// Strict > keeps the first record on ties.
		if s.TopKeyword == nil || r.TotalReviews > s.TopKeyword.TotalReviews {
			s.TopKeyword = r
		}
	}
	if len(records) > 0 {
		s.AverageSentiment = sentimentSum / float64(len(records))
	}
	s.DominantSentiment = ClassifySentiment(s.AverageSentiment)
	if s.TotalReviews > 0 {
		s.PositiveRatio = int(math.Round(float64(s.Distribution.Positive) / float64(s.TotalReviews) * 100))
	}
	return s
}
