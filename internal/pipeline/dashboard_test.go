package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

func TestLoadDashboard_MissingFile(t *testing.T) {
	view := LoadDashboard(filepath.Join(t.TempDir(), "sentiment_labeled_comments.csv"), DefaultTopWords)
	assert.Equal(t, model.DashboardUnavailable, view.Status)
	assert.Contains(t, view.Warning, "Please run the pipeline first")
	assert.Nil(t, view.Summary)
}

func TestLoadDashboard_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	require.NoError(t, os.WriteFile(path, []byte("author,text\nalice,hi\n"), 0644))

	view := LoadDashboard(path, DefaultTopWords)
	assert.Equal(t, model.DashboardUnavailable, view.Status)
	assert.Contains(t, view.Warning, "sentiment_score")
}

func TestLoadDashboard_Ready(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	_, err := WriteScoredCSV(path, sampleScored())
	require.NoError(t, err)

	view := LoadDashboard(path, 1)
	require.Equal(t, model.DashboardReady, view.Status)
	assert.Empty(t, view.Warning)
	assert.Equal(t, 2, view.Summary.Total)
	assert.Equal(t, 50.0, view.Summary.Percentages[model.LabelNegative])
	assert.Len(t, view.TopWords[model.LabelPositive], 1)
	assert.Equal(t, []string{"No valid neutral comments to display."}, view.Notes)
}

func TestRenderDashboard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scored.csv")
	_, err := WriteScoredCSV(path, sampleScored())
	require.NoError(t, err)

	output := utils.NewOutputManager(filepath.Join(dir, "output"))
	view := LoadDashboard(path, DefaultTopWords)
	require.NoError(t, RenderDashboard(&view, output, DefaultWordCloud()))

	assert.Len(t, view.Images, 3)
	for name, img := range view.Images {
		assert.FileExists(t, img, name)
	}
	assert.NotContains(t, view.Images, "wordcloud_neutral")
	assert.Equal(t, filepath.Join(dir, "output", "dashboard", "wordcloud_positive.png"), view.Images["wordcloud_positive"])
}

func TestRenderDashboard_UnavailableIsNoop(t *testing.T) {
	view := model.DashboardView{Status: model.DashboardUnavailable, Warning: "x"}
	require.NoError(t, RenderDashboard(&view, utils.NewOutputManager(t.TempDir()), DefaultWordCloud()))
	assert.Nil(t, view.Images)
}
