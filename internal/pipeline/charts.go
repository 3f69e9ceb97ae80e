package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

const (
	chartWidth  = 1000
	chartHeight = 500
)

// labelColors are the bar colors of the distribution chart
var labelColors = map[model.Label]drawing.Color{
	model.LabelPositive: {R: 26, G: 152, B: 80, A: 255},
	model.LabelNeutral:  {R: 189, G: 189, B: 189, A: 255},
	model.LabelNegative: {R: 215, G: 48, B: 39, A: 255},
}

// red-yellow-green diverging scale, 11 stops from -1 to +1
var divergingStops = []drawing.Color{
	{R: 165, G: 0, B: 38, A: 255},
	{R: 215, G: 48, B: 39, A: 255},
	{R: 244, G: 109, B: 67, A: 255},
	{R: 253, G: 174, B: 97, A: 255},
	{R: 254, G: 224, B: 139, A: 255},
	{R: 255, G: 255, B: 191, A: 255},
	{R: 217, G: 239, B: 139, A: 255},
	{R: 166, G: 217, B: 106, A: 255},
	{R: 102, G: 189, B: 99, A: 255},
	{R: 26, G: 152, B: 80, A: 255},
	{R: 0, G: 104, B: 55, A: 255},
}

// DivergingColor maps a score in [-1, 1] onto the red-yellow-green scale.
// 0 is the midpoint; out-of-range scores are clamped.
func DivergingColor(score float64) drawing.Color {
	score = clampPolarity(score)
	pos := (score + 1) / 2 * float64(len(divergingStops)-1)
	i := int(math.Floor(pos))
	if i >= len(divergingStops)-1 {
		return divergingStops[len(divergingStops)-1]
	}
	frac := pos - float64(i)
	a, b := divergingStops[i], divergingStops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// RenderDistributionChart draws one bar per label in fixed order; absent labels are zero-height bars
func RenderDistributionChart(path string, counts map[model.Label]int) error {
	bars := make([]chart.Value, 0, len(model.Labels))
	maxCount := 0
	for _, l := range model.Labels {
		c := counts[l]
		if c > maxCount {
			maxCount = c
		}
		color := labelColors[l]
		bars = append(bars, chart.Value{
			Label: utils.Capitalize(string(l)),
			Value: float64(c),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:      "Sentiment Distribution of YouTube Comments",
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   160,
		BarSpacing: 120,
		YAxis: chart.YAxis{
			Name:           "Number of Comments",
			Range:          &chart.ContinuousRange{Min: 0, Max: yAxisMax(maxCount)},
			ValueFormatter: intFormatter,
		},
		Bars: bars,
	}
	return renderPNG(path, graph)
}

// RenderTimelineChart draws comment volume per day, each bar colored by the day's mean score
func RenderTimelineChart(path string, days []model.DailyAggregate) error {
	if len(days) == 0 {
		return fmt.Errorf("no dated comments to plot")
	}

	step := int(math.Ceil(float64(len(days)) / 12))
	maxCount := 0
	bars := make([]chart.Value, 0, len(days))
	for i, d := range days {
		if d.NumComments > maxCount {
			maxCount = d.NumComments
		}
		label := ""
		if i%step == 0 {
			label = d.Date
		}
		color := DivergingColor(d.AvgSentiment)
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(d.NumComments),
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorBlack, StrokeWidth: 0.5},
		})
	}

	spacing := 10
	barWidth := (chartWidth-160)/len(days) - spacing
	if barWidth < 4 {
		barWidth, spacing = 4, 2
	}
	if barWidth > 120 {
		barWidth = 120
	}

	graph := chart.BarChart{
		Title:      "Sentiment Timeline (bar color = average sentiment)",
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Name:           "Number of Comments",
			Range:          &chart.ContinuousRange{Min: 0, Max: yAxisMax(maxCount)},
			ValueFormatter: intFormatter,
		},
		Bars: bars,
	}
	return renderPNG(path, graph)
}

func renderPNG(path string, graph chart.BarChart) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// yAxisMax leaves headroom above the tallest bar and never collapses to an empty range
func yAxisMax(maxCount int) float64 {
	if maxCount < 1 {
		return 1
	}
	return math.Ceil(float64(maxCount) * 1.1)
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}
