package biz

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateSingleNegativeRecord(t *testing.T) {
	records := []AnalysisRecord{{
		KeywordGroup:   "ads",
		Keyword:        "ads",
		TotalReviews:   100,
		AvgSentiment:   -0.5,
		PositiveCount:  10,
		NegativeCount:  80,
		NeutralCount:   10,
		SentimentLabel: SentimentNegative,
	}}

	s := Aggregate(records)
	if !almostEqual(s.AverageSentiment, -0.5) {
		t.Errorf("AverageSentiment = %v, want -0.5", s.AverageSentiment)
	}
	if s.DominantSentiment != SentimentNegative {
		t.Errorf("DominantSentiment = %q, want negative", s.DominantSentiment)
	}
	if s.PositiveRatio != 10 {
		t.Errorf("PositiveRatio = %d, want 10", s.PositiveRatio)
	}
	if s.TotalReviews != 100 {
		t.Errorf("TotalReviews = %d, want 100", s.TotalReviews)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.TotalReviews != 0 {
		t.Errorf("TotalReviews = %d, want 0", s.TotalReviews)
	}
	if s.AverageSentiment != 0 {
		t.Errorf("AverageSentiment = %v, want 0", s.AverageSentiment)
	}
	if s.DominantSentiment != SentimentNeutral {
		t.Errorf("DominantSentiment = %q, want neutral", s.DominantSentiment)
	}
	if s.TopKeyword != nil {
		t.Errorf("TopKeyword = %v, want nil", s.TopKeyword)
	}
	if s.PositiveRatio != 0 {
		t.Errorf("PositiveRatio = %d, want 0", s.PositiveRatio)
	}
}

func TestAggregateMeanIsArithmetic(t *testing.T) {
	records := []AnalysisRecord{
		{AvgSentiment: 0.9, TotalReviews: 1},
		{AvgSentiment: -0.3, TotalReviews: 1000},
		{AvgSentiment: 0.0, TotalReviews: 10},
	}
	s := Aggregate(records)
	// Unweighted mean: review counts play no role.
	want := (0.9 - 0.3 + 0.0) / 3
	if !almostEqual(s.AverageSentiment, want) {
		t.Errorf("AverageSentiment = %v, want %v", s.AverageSentiment, want)
	}
}

func TestAggregateDistributionIgnoresTotalMismatch(t *testing.T) {
	// Counts deliberately do not add up to total_reviews; no cross-field
	// validation may reject or repair them.
	records := []AnalysisRecord{
		{TotalReviews: 5, PositiveCount: 10, NegativeCount: 20, NeutralCount: 30},
		{TotalReviews: 7, PositiveCount: 1, NegativeCount: 2, NeutralCount: 3},
	}
	s := Aggregate(records)
	if s.Distribution.Positive != 11 || s.Distribution.Negative != 22 || s.Distribution.Neutral != 33 {
		t.Errorf("Distribution = %+v, want 11/22/33", s.Distribution)
	}
	if s.TotalReviews != 12 {
		t.Errorf("TotalReviews = %d, want 12", s.TotalReviews)
	}
}

func TestTopKeywordSelection(t *testing.T) {
	records := []AnalysisRecord{
		{Keyword: "small", TotalReviews: 30, AvgSentiment: 0.4},
		{Keyword: "big", TotalReviews: 70, AvgSentiment: 0.4},
	}
	s := Aggregate(records)
	if s.TopKeyword == nil || s.TopKeyword.Keyword != "big" {
		t.Fatalf("TopKeyword = %v, want big", s.TopKeyword)
	}

	// Equal counts keep the first-encountered record.
	tied := []AnalysisRecord{
		{Keyword: "first", TotalReviews: 70},
		{Keyword: "second", TotalReviews: 70},
	}
	s = Aggregate(tied)
	if s.TopKeyword == nil || s.TopKeyword.Keyword != "first" {
		t.Fatalf("TopKeyword = %v, want first", s.TopKeyword)
	}
}

func TestClassifySentimentBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.21, SentimentPositive},
		{0.2, SentimentNeutral},
		{0.0, SentimentNeutral},
		{-0.2, SentimentNeutral},
		{-0.21, SentimentNegative},
	}
	for _, c := range cases {
		if got := ClassifySentiment(c.score); got != c.want {
			t.Errorf("ClassifySentiment(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
