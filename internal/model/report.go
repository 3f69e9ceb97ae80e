package model

// DailyAggregate is one bar of the sentiment timeline
type DailyAggregate struct {
	Date         string  `json:"date"` // YYYY-MM-DD, UTC
	NumComments  int     `json:"num_comments"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// SentimentSummary holds label counts and their rounded percentages
type SentimentSummary struct {
	Total       int               `json:"total"`
	Counts      map[Label]int     `json:"counts"`
	Percentages map[Label]float64 `json:"percentages"`
}

// ReportArtifact lists everything a report build wrote to disk
type ReportArtifact struct {
	DocumentPath      string           `json:"document_path"`
	DistributionChart string           `json:"distribution_chart"`
	TimelineChart     string           `json:"timeline_chart"`
	WordClouds        map[Label]string `json:"word_clouds"` // only labels with a non-empty corpus
	WorkbookPath      string           `json:"workbook_path,omitempty"`
	Summary           SentimentSummary `json:"summary"`
	Timeline          []DailyAggregate `json:"timeline"`
}

// WordCount is a token and its frequency inside one label's corpus
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DashboardStatus distinguishes a usable dashboard from missing data
type DashboardStatus string

const (
	DashboardReady       DashboardStatus = "ready"
	DashboardUnavailable DashboardStatus = "unavailable"
)

// DashboardView is the secondary view over the scored flat file.
// When Status is DashboardUnavailable only Warning is set.
type DashboardView struct {
	Status   DashboardStatus       `json:"status"`
	Warning  string                `json:"warning,omitempty"`
	Notes    []string              `json:"notes,omitempty"` // per-label notices, e.g. no comments to display
	Summary  *SentimentSummary     `json:"summary,omitempty"`
	TopWords map[Label][]WordCount `json:"top_words,omitempty"`
	Images   map[string]string     `json:"images,omitempty"` // name -> file path, or download URL over HTTP
	Records  []ScoredRecord        `json:"-"`
}
