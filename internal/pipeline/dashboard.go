package pipeline

import (
	"errors"
	"fmt"
	"os"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

// DefaultTopWords is how many words per label the dashboard lists
const DefaultTopWords = 10

// LoadDashboard reads the scored flat file on its own, without running the
// pipeline. A missing file, missing columns or unreadable rows give the
// DashboardUnavailable variant with a warning instead of an error.
func LoadDashboard(scoredPath string, topN int) model.DashboardView {
	records, err := ReadScoredCSV(scoredPath)
	if err != nil {
		return model.DashboardView{
			Status:  model.DashboardUnavailable,
			Warning: dashboardWarning(scoredPath, err),
		}
	}

	summary := Summarize(records)
	view := model.DashboardView{
		Status:   model.DashboardReady,
		Summary:  &summary,
		TopWords: TopWords(records, topN),
		Records:  records,
	}
	for l, words := range view.TopWords {
		if len(words) == 0 {
			view.TopWords[l] = []model.WordCount{}
		}
	}
	corpus := CorpusByLabel(records)
	for _, l := range model.Labels {
		if corpus[l] == "" {
			view.Notes = append(view.Notes, fmt.Sprintf("No valid %s comments to display.", l))
		}
	}
	return view
}

func dashboardWarning(path string, err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("No %s file found. Please run the pipeline first.", path)
	case errors.Is(err, ErrMissingColumns):
		return fmt.Sprintf("%s is not a sentiment-labeled file: %v", path, err)
	default:
		return fmt.Sprintf("Could not read %s: %v", path, err)
	}
}

// RenderDashboard re-renders the distribution chart and the word clouds of a
// ready view under <output>/dashboard and records their paths in view.Images.
// Unavailable views are left untouched.
func RenderDashboard(view *model.DashboardView, output *utils.OutputManager, wc WordCloud) error {
	if view.Status != model.DashboardReady {
		return nil
	}
	dir := output.Sub(utils.DashboardDirName)
	if err := dir.EnsureOutputDirExists(); err != nil {
		return stageErr(StageDashboard, KindIO, err)
	}

	images := make(map[string]string)
	distribution := dir.DistributionChartPath()
	if err := RenderDistributionChart(distribution, view.Summary.Counts); err != nil {
		return stageErr(StageDashboard, KindRendering, err)
	}
	images["distribution"] = distribution

	corpus := CorpusByLabel(view.Records)
	for _, l := range model.Labels {
		path := dir.WordCloudPath(string(l))
		if corpus[l] == "" {
			if err := removeStale(path); err != nil {
				return stageErr(StageDashboard, KindIO, err)
			}
			continue
		}
		if err := wc.Render(path, l, corpus[l]); err != nil {
			return stageErr(StageDashboard, KindRendering, err)
		}
		images["wordcloud_"+string(l)] = path
	}
	view.Images = images
	return nil
}
