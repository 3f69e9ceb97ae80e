package pipeline

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"yt-sentiment-pipeline/internal/model"
)

// ErrEmptyCorpus is returned when a word cloud is requested for a label without text
var ErrEmptyCorpus = errors.New("empty corpus")

var wordCloudFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

var wordCloudPalettes = map[model.Label][]color.RGBA{
	model.LabelPositive: {{0, 104, 55, 255}, {26, 152, 80, 255}, {102, 189, 99, 255}, {35, 139, 69, 255}},
	model.LabelNeutral:  {{37, 37, 37, 255}, {82, 82, 82, 255}, {115, 115, 115, 255}, {33, 102, 172, 255}},
	model.LabelNegative: {{165, 0, 38, 255}, {215, 48, 39, 255}, {244, 109, 67, 255}, {153, 52, 4, 255}},
}

// WordCloud lays out the most frequent words of a corpus on a white canvas,
// largest first, along an outward spiral. Words that find no free spot are left out.
type WordCloud struct {
	Width       int
	Height      int
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
}

// DefaultWordCloud is an 800x400 cloud of up to 150 words
func DefaultWordCloud() WordCloud {
	return WordCloud{Width: 800, Height: 400, MaxWords: 150, MinFontSize: 12, MaxFontSize: 72}
}

type placedBox struct{ x0, y0, x1, y1 float64 }

func (b placedBox) overlaps(o placedBox) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// Render draws the cloud for one label's corpus to path as PNG
func (wc WordCloud) Render(path string, label model.Label, corpus string) error {
	words := WordFrequencies(corpus)
	if len(words) == 0 {
		return ErrEmptyCorpus
	}
	if wc.MaxWords > 0 && len(words) > wc.MaxWords {
		words = words[:wc.MaxWords]
	}

	ttf, err := wordCloudFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	faces := make(map[int]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()
	faceFor := func(size float64) font.Face {
		key := int(math.Round(size))
		if f, ok := faces[key]; ok {
			return f
		}
		f := truetype.NewFace(ttf, &truetype.Options{Size: float64(key)})
		faces[key] = f
		return f
	}

	dc := gg.NewContext(wc.Width, wc.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	palette := wordCloudPalettes[label]
	if len(palette) == 0 {
		palette = wordCloudPalettes[model.LabelNeutral]
	}

	maxCount := float64(words[0].Count)
	minCount := float64(words[len(words)-1].Count)
	cx, cy := float64(wc.Width)/2, float64(wc.Height)/2
	var placed []placedBox

	for i, w := range words {
		var size float64
		if maxCount > minCount {
			ratio := (float64(w.Count) - minCount) / (maxCount - minCount)
			size = wc.MinFontSize + math.Sqrt(ratio)*(wc.MaxFontSize-wc.MinFontSize)
		} else {
			size = (wc.MinFontSize + wc.MaxFontSize) / 2
		}

		dc.SetFontFace(faceFor(size))
		tw, th := dc.MeasureString(w.Word)
		box, ok := wc.findSpot(cx, cy, tw+4, th+4, placed)
		if !ok {
			continue
		}
		placed = append(placed, box)

		dc.SetColor(palette[i%len(palette)])
		dc.DrawStringAnchored(w.Word, (box.x0+box.x1)/2, (box.y0+box.y1)/2, 0.5, 0.35)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save word cloud %s: %w", filepath.Base(path), err)
	}
	return nil
}

// findSpot walks an Archimedean spiral from the center until the w x h box
// fits inside the canvas without touching a placed box
func (wc WordCloud) findSpot(cx, cy, w, h float64, placed []placedBox) (placedBox, bool) {
	if w > float64(wc.Width) || h > float64(wc.Height) {
		return placedBox{}, false
	}
	aspect := float64(wc.Width) / float64(wc.Height)
	maxRadius := math.Hypot(float64(wc.Width), float64(wc.Height)) / 2

	for t := 0.0; ; t += 0.1 {
		r := 2 * t
		if r > maxRadius {
			return placedBox{}, false
		}
		x := cx + r*math.Cos(t)*aspect - w/2
		y := cy + r*math.Sin(t) - h/2
		box := placedBox{x0: x, y0: y, x1: x + w, y1: y + h}
		if box.x0 < 0 || box.y0 < 0 || box.x1 > float64(wc.Width) || box.y1 > float64(wc.Height) {
			continue
		}
		free := true
		for _, p := range placed {
			if box.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return box, true
		}
	}
}
