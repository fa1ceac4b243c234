package biz

import (
	"fmt"
	"strings"
)

// CellKind tags the variant held by a comparison-table cell. A cell may
// carry plain text, a list, a labeled sentiment score, or an app identity;
// the tag replaces runtime type inspection on the consumer side.
type CellKind string

const (
	KindText           CellKind = "text"
	KindList           CellKind = "list"
	KindSentimentScore CellKind = "sentiment_score"
	KindIdentityCard   CellKind = "identity_card"
)

// SentimentScore is a labeled scalar score cell value.
type SentimentScore struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// IdentityCard is an app name plus icon cell value.
type IdentityCard struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Cell is one tagged-variant value of the comparison table. Exactly the
// field matching Kind is set; an empty Kind renders as an em-dash blank.
type Cell struct {
	Kind     CellKind        `json:"kind,omitempty"`
	Text     string          `json:"text,omitempty"`
	Items    []string        `json:"items,omitempty"`
	Score    *SentimentScore `json:"score,omitempty"`
	Identity *IdentityCard   `json:"identity,omitempty"`
}

func TextCell(text string) Cell {
	if text == "" {
		return Cell{}
	}
	return Cell{Kind: KindText, Text: text}
}

func ListCell(items []string) Cell {
	if len(items) == 0 {
		return Cell{}
	}
	return Cell{Kind: KindList, Items: items}
}

func ScoreCell(label string, value float64) Cell {
	return Cell{Kind: KindSentimentScore, Score: &SentimentScore{Label: label, Value: value}}
}

func IdentityCell(name, icon string) Cell {
	return Cell{Kind: KindIdentityCard, Identity: &IdentityCard{Name: name, Icon: icon}}
}

// Render formats the cell as plain text, one renderer per variant.
func (c Cell) Render() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindList:
		return "• " + strings.Join(c.Items, "\n• ")
	case KindSentimentScore:
		return fmt.Sprintf("%s (%+.2f)", c.Score.Label, c.Score.Value)
	case KindIdentityCard:
		return c.Identity.Name
	default:
		return "—"
	}
}

// TableRow is one feature row of the comparison table; Cells align with
// the entry order passed to BuildTable.
type TableRow struct {
	Feature string `json:"feature"`
	Cells   []Cell `json:"cells"`
}

// BuildTable lays the comparison entries out as feature rows, one column
// per app.
func BuildTable(entries []ComparisonEntry) []TableRow {
	if len(entries) == 0 {
		return nil
	}
	rows := []TableRow{
		{Feature: "App"},
		{Feature: "AI Summary"},
		{Feature: "Review Summary"},
		{Feature: "Total Reviews"},
		{Feature: "Average Sentiment"},
		{Feature: "Positive Ratio"},
		{Feature: "Feature Recommendations"},
	}
	for _, e := range entries {
		cells := []Cell{
			IdentityCell(e.AppName, e.AppIcon),
			TextCell(e.AISummary),
			TextCell(e.ReviewSummary),
			TextCell(formatCount(e.TotalReviews)),
			ScoreCell(e.DominantSentiment, e.AverageSentiment),
			TextCell(fmt.Sprintf("%d%%", e.PositiveRatio)),
			ListCell(e.FeatureRecommendations),
		}
		for i := range rows {
			rows[i].Cells = append(rows[i].Cells, cells[i])
		}
	}
	return rows
}

func formatCount(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
