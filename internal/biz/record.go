package biz

// Sentiment labels attached to records and keyword groups.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Classification thresholds for a scalar sentiment score. These are fixed
// design constants; every place that derives a label from a score must go
// through ClassifySentiment so the boundaries stay consistent.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// FallbackGroupLabel labels records that carry neither a keyword group nor
// a keyword.
const FallbackGroupLabel = "기타"

// DefaultAppName is used when the upstream omits app_name and the caller
// supplied no collection context.
const DefaultAppName = "unknown_app"

// AnalysisRecord is one per-keyword row of an analysis result. After
// Normalize every field is populated, so downstream code never checks for
// absent values.
type AnalysisRecord struct {
	KeywordGroup   string  `json:"keyword_group"`
	Keyword        string  `json:"keyword"`
	TotalReviews   int     `json:"total_reviews"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	PositiveCount  int     `json:"positive_count"`
	NegativeCount  int     `json:"negative_count"`
	NeutralCount   int     `json:"neutral_count"`
	SentimentLabel string  `json:"sentiment_label"`
	AppName        string  `json:"app_name,omitempty"`
}

// RawRecord is the boundary shape of one upstream row: JSON-shaped, every
// field optional and untrusted.
type RawRecord map[string]any

// ClassifySentiment maps a scalar score to a coarse label. The boundary
// values 0.2 and -0.2 exactly are neutral.
func ClassifySentiment(score float64) string {
	switch {
	case score > positiveThreshold:
		return SentimentPositive
	case score < negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Normalize fills every optional field of the raw upstream rows with
// deterministic defaults, producing the uniform internal record shape.
// It is pure and total: a malformed field degrades to its default instead
// of failing the batch. fallbackApp is the caller-supplied collection
// context (e.g. the search keyword that produced this batch) used when a
// row has no app_name.
func Normalize(raw []RawRecord, fallbackApp string) []AnalysisRecord {
	if fallbackApp == "" {
		fallbackApp = DefaultAppName
	}
	records := make([]AnalysisRecord, 0, len(raw))
	for _, row := range raw {
		r := AnalysisRecord{
			KeywordGroup:   rawString(row, "keyword_group"),
			Keyword:        rawString(row, "keyword"),
			TotalReviews:   rawInt(row, "total_reviews"),
			AvgSentiment:   rawFloat(row, "avg_sentiment"),
			PositiveCount:  rawInt(row, "positive_count"),
			NegativeCount:  rawInt(row, "negative_count"),
			NeutralCount:   rawInt(row, "neutral_count"),
			SentimentLabel: rawString(row, "sentiment_label"),
			AppName:        rawString(row, "app_name"),
		}
		if r.KeywordGroup == "" {
			r.KeywordGroup = r.Keyword
		}
		if r.KeywordGroup == "" {
			r.KeywordGroup = FallbackGroupLabel
		}
		if r.Keyword == "" {
			r.Keyword = r.KeywordGroup
		}
		if r.SentimentLabel == "" {
			r.SentimentLabel = SentimentNeutral
		}
		if r.AppName == "" {
			r.AppName = fallbackApp
		}
		records = append(records, r)
	}
	return records
}

func rawString(row RawRecord, key string) string {
	s, _ := row[key].(string)
	return s
}

func rawFloat(row RawRecord, key string) float64 {
	// encoding/json decodes every JSON number into float64.
	f, _ := row[key].(float64)
	return f
}

func rawInt(row RawRecord, key string) int {
	return int(rawFloat(row, key))
}
