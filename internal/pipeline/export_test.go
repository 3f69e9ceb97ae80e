package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"yt-sentiment-pipeline/internal/model"
)

func sampleScored() []model.ScoredRecord {
	published := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return []model.ScoredRecord{
		{
			CleanedRecord: model.CleanedRecord{
				CommentRecord: model.CommentRecord{Author: "alice", Text: "I love it, \"really\"", Likes: 3, Published: published},
				CleanText:     "love really",
			},
			Score: 0.6369,
			Label: model.LabelPositive,
		},
		{
			CleanedRecord: model.CleanedRecord{
				CommentRecord: model.CommentRecord{Author: "bob", Text: "terrible\nsound", Likes: 0, Published: published},
				CleanText:     "terrible sound",
			},
			Score: -0.4767,
			Label: model.LabelNegative,
		},
	}
}

func TestWriteScoredCSV_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scored.csv")
	records := sampleScored()

	res, err := WriteScoredCSV(path, records)
	require.NoError(t, err)
	assert.Equal(t, "csv", res.Type)
	assert.Equal(t, 2, res.RecordCount)

	got, err := ReadScoredCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteScoredCSV_EmptyKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	_, err := WriteScoredCSV(path, nil)
	require.NoError(t, err)

	got, err := ReadScoredCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.xlsx")
	records := sampleScored()

	res, err := ExportWorkbook(path, records, Summarize(records))
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecordCount)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Comments", "Summary"}, f.GetSheetList())

	author, err := f.GetCellValue("Comments", "A3")
	require.NoError(t, err)
	assert.Equal(t, "bob", author)

	label, err := f.GetCellValue("Comments", "G2")
	require.NoError(t, err)
	assert.Equal(t, "positive", label)

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"positive", "1", "50"}, rows[1])
	assert.Equal(t, []string{"total", "2", "100"}, rows[4])
}
