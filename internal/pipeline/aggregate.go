package pipeline

import (
	"sort"
	"strings"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

// CountByLabel counts records per label; every label is present, possibly zero
func CountByLabel(records []model.ScoredRecord) map[model.Label]int {
	counts := make(map[model.Label]int, len(model.Labels))
	for _, l := range model.Labels {
		counts[l] = 0
	}
	for _, rec := range records {
		counts[rec.Label]++
	}
	return counts
}

// Summarize computes label counts and percentages rounded to two decimals.
// An empty set reports 0 for every label.
func Summarize(records []model.ScoredRecord) model.SentimentSummary {
	counts := CountByLabel(records)
	total := len(records)
	pct := make(map[model.Label]float64, len(model.Labels))
	for _, l := range model.Labels {
		if total == 0 {
			pct[l] = 0
			continue
		}
		pct[l] = utils.Round2(float64(counts[l]) / float64(total) * 100)
	}
	return model.SentimentSummary{Total: total, Counts: counts, Percentages: pct}
}

// DailyAggregates groups records by the UTC calendar date of their publish time.
// AvgSentiment is the unweighted mean score of the day. Dates are ascending.
func DailyAggregates(records []model.ScoredRecord) []model.DailyAggregate {
	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[string]*bucket)
	for _, rec := range records {
		date := rec.Published.UTC().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.count++
		b.sum += rec.Score
	}

	out := make([]model.DailyAggregate, 0, len(buckets))
	for date, b := range buckets {
		out = append(out, model.DailyAggregate{
			Date:         date,
			NumComments:  b.count,
			AvgSentiment: b.sum / float64(b.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CorpusByLabel joins the non-blank clean texts of each label.
// Labels without text map to "".
func CorpusByLabel(records []model.ScoredRecord) map[model.Label]string {
	parts := make(map[model.Label][]string, len(model.Labels))
	for _, rec := range records {
		if t := strings.TrimSpace(rec.CleanText); t != "" {
			parts[rec.Label] = append(parts[rec.Label], t)
		}
	}
	corpus := make(map[model.Label]string, len(model.Labels))
	for _, l := range model.Labels {
		corpus[l] = strings.Join(parts[l], " ")
	}
	return corpus
}

// WordFrequencies counts tokens of a corpus, most frequent first, ties alphabetical
func WordFrequencies(corpus string) []model.WordCount {
	counts := make(map[string]int)
	for _, w := range strings.Fields(corpus) {
		counts[w]++
	}
	out := make([]model.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// TopWords returns at most n of the most frequent words per label
func TopWords(records []model.ScoredRecord, n int) map[model.Label][]model.WordCount {
	if n < 0 {
		n = 0
	}
	top := make(map[model.Label][]model.WordCount, len(model.Labels))
	for l, corpus := range CorpusByLabel(records) {
		freq := WordFrequencies(corpus)
		if len(freq) > n {
			freq = freq[:n]
		}
		top[l] = freq
	}
	return top
}
