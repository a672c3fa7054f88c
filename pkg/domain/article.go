package domain

import "strings"

// legacySummaryPlaceholder is shown when an article has no summary
const legacySummaryPlaceholder = "Resumo indisponível."

// Article is a single AI-produced headline with its narrative summary.
// Articles are created on every headline fetch and never persisted.
type Article struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle,omitempty"`
	Category       Category `json:"category"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	SourceURL      string   `json:"sourceUrl,omitempty"`
	SourceName     string   `json:"sourceName,omitempty"`
	PublishedTime  string   `json:"publishedTime,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	LoadingSummary bool     `json:"isLoadingSummary,omitempty"`
}

// DisplayTitle returns the title terminated with a dot
func (a Article) DisplayTitle() string {
	if strings.HasSuffix(strings.TrimSpace(a.Title), ".") {
		return a.Title
	}
	return a.Title + "."
}

// DisplaySource returns the source name or the newsroom placeholder
func (a Article) DisplaySource() string {
	if a.SourceName == "" {
		return "Redação"
	}
	return a.SourceName
}

// SummaryText returns the summary or a placeholder if the article has none
func (a Article) SummaryText() string {
	if a.Summary == "" {
		return legacySummaryPlaceholder
	}
	return a.Summary
}
