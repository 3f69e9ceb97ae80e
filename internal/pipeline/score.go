package pipeline

import (
	"math"

	"github.com/jonreiter/govader"

	"yt-sentiment-pipeline/internal/model"
)

// Label thresholds; both boundaries are neutral
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// PolarityScorer returns a polarity in [-1, 1] for cleaned text
type PolarityScorer interface {
	Polarity(text string) float64
}

// VaderScorer scores text with the VADER lexicon (compound score)
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) float64 {
	return clampPolarity(v.analyzer.PolarityScores(text).Compound)
}

// LabelFor derives the label from a score: > 0.1 positive, < -0.1 negative, else neutral
func LabelFor(score float64) model.Label {
	switch {
	case score > PositiveThreshold:
		return model.LabelPositive
	case score < NegativeThreshold:
		return model.LabelNegative
	default:
		return model.LabelNeutral
	}
}

// Scorer attaches a score and its derived label to cleaned records
type Scorer struct {
	Polarity PolarityScorer
}

func NewScorer(p PolarityScorer) *Scorer {
	if p == nil {
		p = NewVaderScorer()
	}
	return &Scorer{Polarity: p}
}

// Score scores one non-empty clean text
func (s *Scorer) Score(cleanText string) (float64, model.Label) {
	score := clampPolarity(s.Polarity.Polarity(cleanText))
	return score, LabelFor(score)
}

// ScoreRecords scores records in order. Callers filter blank text with FilterScorable first.
func (s *Scorer) ScoreRecords(records []model.CleanedRecord) []model.ScoredRecord {
	out := make([]model.ScoredRecord, len(records))
	for i, rec := range records {
		score, label := s.Score(rec.CleanText)
		out[i] = model.ScoredRecord{CleanedRecord: rec, Score: score, Label: label}
	}
	return out
}

func clampPolarity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
