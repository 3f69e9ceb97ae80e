package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

const (
	imageX      = 15.0
	imageWidth  = 180.0
	imageHeight = 90.0 // every chart and cloud is rendered at 2:1
)

// ReportBuilder renders charts, word clouds and the PDF into the output directory
type ReportBuilder struct {
	Output    *utils.OutputManager
	Title     string
	WordCloud WordCloud
	Workbook  bool
	Logger    *zap.Logger
}

func NewReportBuilder(output *utils.OutputManager, title string, logger *zap.Logger) *ReportBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportBuilder{
		Output:    output,
		Title:     title,
		WordCloud: DefaultWordCloud(),
		Logger:    logger,
	}
}

// Build writes every artifact for records and returns their paths. Labels
// without text get no word cloud; days without comments get no timeline.
// Files from an earlier run that this run does not produce are removed.
func (b *ReportBuilder) Build(records []model.ScoredRecord) (*model.ReportArtifact, error) {
	if err := b.Output.EnsureOutputDirExists(); err != nil {
		return nil, err
	}

	artifact := &model.ReportArtifact{
		DocumentPath: b.Output.ReportPath(),
		WordClouds:   make(map[model.Label]string),
		Summary:      Summarize(records),
		Timeline:     DailyAggregates(records),
	}

	// 1. distribution
	artifact.DistributionChart = b.Output.DistributionChartPath()
	if err := RenderDistributionChart(artifact.DistributionChart, artifact.Summary.Counts); err != nil {
		return nil, err
	}

	// 2. word clouds
	wordClouds, err := b.renderWordClouds(b.Output, records)
	if err != nil {
		return nil, err
	}
	artifact.WordClouds = wordClouds

	// 3. timeline
	timelinePath := b.Output.TimelineChartPath()
	if len(artifact.Timeline) > 0 {
		if err := RenderTimelineChart(timelinePath, artifact.Timeline); err != nil {
			return nil, err
		}
		artifact.TimelineChart = timelinePath
	} else if err := removeStale(timelinePath); err != nil {
		return nil, err
	}

	if b.Workbook {
		res, err := ExportWorkbook(b.Output.WorkbookPath(), records, artifact.Summary)
		if err != nil {
			return nil, err
		}
		artifact.WorkbookPath = res.Path
	}

	// 4. document
	if err := b.writePDF(artifact); err != nil {
		return nil, err
	}

	b.Logger.Info("✅ Report built",
		zap.String("path", artifact.DocumentPath),
		zap.Int("records", artifact.Summary.Total),
		zap.Int("word_clouds", len(artifact.WordClouds)),
		zap.Int("days", len(artifact.Timeline)),
	)
	return artifact, nil
}

func (b *ReportBuilder) renderWordClouds(out *utils.OutputManager, records []model.ScoredRecord) (map[model.Label]string, error) {
	paths := make(map[model.Label]string)
	corpus := CorpusByLabel(records)
	for _, l := range model.Labels {
		path := out.WordCloudPath(string(l))
		if strings.TrimSpace(corpus[l]) == "" {
			b.Logger.Info("Skipping word cloud, no text", zap.String("label", string(l)))
			if err := removeStale(path); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.WordCloud.Render(path, l, corpus[l]); err != nil {
			return nil, err
		}
		paths[l] = path
	}
	return paths, nil
}

func (b *ReportBuilder) writePDF(a *model.ReportArtifact) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(b.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 12, tr(b.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 14)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"This report provides an analysis of user engagement and emotional trends in %d YouTube comments.",
		a.Summary.Total), "", "L", false)

	chapterTitle(pdf, "1. Sentiment Distribution")
	chapterBody(pdf, "The chart shows how user comments are spread across positive, neutral, and negative categories.")
	addImage(pdf, a.DistributionChart)
	chapterBody(pdf, percentagesText(a.Summary))

	chapterTitle(pdf, "2. Word Clouds by Sentiment")
	chapterBody(pdf, "Each word cloud represents the most frequent words used in each sentiment category.")
	if len(a.WordClouds) == 0 {
		chapterBody(pdf, "No comment text was available for any sentiment category.")
	}
	for _, l := range model.Labels {
		path, ok := a.WordClouds[l]
		if !ok {
			continue
		}
		chapterBody(pdf, utils.Capitalize(string(l))+" Word Cloud:")
		addImage(pdf, path)
	}

	chapterTitle(pdf, "3. Sentiment Timeline")
	if a.TimelineChart != "" {
		chapterBody(pdf, "This timeline shows how many comments were posted each day. Bar color is the day's average sentiment, from red (negative) through yellow (neutral) to green (positive).")
		addImage(pdf, a.TimelineChart)
	} else {
		chapterBody(pdf, "No dated comments were available.")
	}

	chapterTitle(pdf, "4. Summary & Insights")
	chapterBody(pdf, percentagesText(a.Summary))

	if pdf.Err() {
		return fmt.Errorf("failed to compose report: %w", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(a.DocumentPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func chapterTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
}

func chapterBody(pdf *fpdf.Fpdf, body string) {
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(50, 50, 50)
	pdf.MultiCell(0, 7, body, "", "L", false)
	pdf.Ln(3)
}

// addImage places a chart at full text width, breaking the page first if it would not fit
func addImage(pdf *fpdf.Fpdf, path string) {
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+imageHeight > pageH-bottom {
		pdf.AddPage()
	}
	pdf.ImageOptions(path, imageX, pdf.GetY(), imageWidth, imageHeight, false,
		fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	pdf.Ln(imageHeight + 5)
}

func percentagesText(s model.SentimentSummary) string {
	lines := make([]string, 0, len(model.Labels))
	for _, l := range model.Labels {
		lines = append(lines, fmt.Sprintf("- %s comments: %.2f%% (%d)",
			utils.Capitalize(string(l)), s.Percentages[l], s.Counts[l]))
	}
	return strings.Join(lines, "\n")
}

func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale %s: %w", path, err)
	}
	return nil
}
