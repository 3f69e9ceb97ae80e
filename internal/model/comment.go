package model

import "time"

// Label is the discrete sentiment class derived from a polarity score
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Labels is the fixed category order used by every chart, table and summary
var Labels = []Label{LabelPositive, LabelNeutral, LabelNegative}

// ParseLabel converts a stored label back to its enum value
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// CommentRecord is one top-level comment as returned by the comment-listing API
type CommentRecord struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Likes     int64     `json:"likes"`
	Published time.Time `json:"published"`
}

// CleanedRecord carries the normalized token string next to the original comment
type CleanedRecord struct {
	CommentRecord
	CleanText string `json:"clean_text"`
}

// ScoredRecord is a cleaned comment with its polarity score and derived label
type ScoredRecord struct {
	CleanedRecord
	Score float64 `json:"sentiment_score"`
	Label Label   `json:"sentiment_label"`
}

// Flat store column sets, one per stage
var (
	RawColumns     = []string{"author", "text", "likes", "published"}
	CleanedColumns = append(append([]string{}, RawColumns...), "clean_text")
	ScoredColumns  = append(append([]string{}, CleanedColumns...), "sentiment_score", "sentiment_label")
)
