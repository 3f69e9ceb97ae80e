package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"yt-sentiment-pipeline/internal/model"
)

// stubPolarity returns a fixed score per text, 0 for anything unknown
type stubPolarity map[string]float64

func (s stubPolarity) Polarity(text string) float64 { return s[text] }

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Label
	}{
		{1, model.LabelPositive},
		{0.1000001, model.LabelPositive},
		{0.1, model.LabelNeutral},
		{0, model.LabelNeutral},
		{-0.1, model.LabelNeutral},
		{-0.1000001, model.LabelNegative},
		{-1, model.LabelNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelFor(tt.score), "score %v", tt.score)
	}
}

func TestScorer_ClampsAndLabels(t *testing.T) {
	s := NewScorer(stubPolarity{"great": 3, "awful": -2, "odd": math.NaN()})

	score, label := s.Score("great")
	assert.Equal(t, 1.0, score)
	assert.Equal(t, model.LabelPositive, label)

	score, label = s.Score("awful")
	assert.Equal(t, -1.0, score)
	assert.Equal(t, model.LabelNegative, label)

	score, label = s.Score("odd")
	assert.Equal(t, 0.0, score)
	assert.Equal(t, model.LabelNeutral, label)
}

func TestScoreRecords_KeepsOrder(t *testing.T) {
	s := NewScorer(stubPolarity{"love": 0.5, "hate": -0.5})
	records := []model.CleanedRecord{
		{CommentRecord: model.CommentRecord{Author: "a"}, CleanText: "love"},
		{CommentRecord: model.CommentRecord{Author: "b"}, CleanText: "meh"},
		{CommentRecord: model.CommentRecord{Author: "c"}, CleanText: "hate"},
	}
	out := s.ScoreRecords(records)
	if assert.Len(t, out, 3) {
		assert.Equal(t, "a", out[0].Author)
		assert.Equal(t, model.LabelPositive, out[0].Label)
		assert.Equal(t, model.LabelNeutral, out[1].Label)
		assert.Equal(t, model.LabelNegative, out[2].Label)
	}
}

func TestVaderScorer(t *testing.T) {
	v := NewVaderScorer()
	assert.Greater(t, v.Polarity("love"), PositiveThreshold)
	assert.Less(t, v.Polarity("terrible"), NegativeThreshold)
	assert.Equal(t, model.LabelNeutral, LabelFor(v.Polarity("table chair")))
}

func TestFilterScorable(t *testing.T) {
	kept, dropped := FilterScorable([]model.CleanedRecord{
		{CleanText: "good"},
		{CleanText: ""},
		{CleanText: "   "},
		{CleanText: "fine"},
	})
	assert.Equal(t, 2, dropped)
	if assert.Len(t, kept, 2) {
		assert.Equal(t, "good", kept[0].CleanText)
		assert.Equal(t, "fine", kept[1].CleanText)
	}
}

func TestValidateHeader(t *testing.T) {
	idx, err := ValidateHeader([]string{"\ufeffauthor", ` "text" `, "likes"}, []string{"author", "text"})
	assert.NoError(t, err)
	assert.Equal(t, 0, idx["author"])
	assert.Equal(t, 1, idx["text"])

	_, err = ValidateHeader([]string{"author"}, []string{"author", "sentiment_label"})
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "sentiment_label")
}
