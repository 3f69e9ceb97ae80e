package pipeline

import (
	_ "embed"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"yt-sentiment-pipeline/internal/model"
)

//go:embed stopwords_english.txt
var englishStopwords string

var (
	urlPattern       = regexp.MustCompile(`http\S+`)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// EnglishStopwords returns the NLTK English stopword list
func EnglishStopwords() []string {
	return strings.Fields(englishStopwords)
}

// Cleaner turns raw comment text into a lowercase token string without
// URLs, non-letters or stopwords. It holds no mutable state.
type Cleaner struct {
	stopwords map[string]struct{}
}

// NewCleaner builds a cleaner over the given stopword list
func NewCleaner(stopwords []string) *Cleaner {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Cleaner{stopwords: set}
}

var defaultCleaner = sync.OnceValue(func() *Cleaner {
	return NewCleaner(EnglishStopwords())
})

// DefaultCleaner returns the shared English cleaner
func DefaultCleaner() *Cleaner { return defaultCleaner() }

// CleanText cleans raw with the English stopword set
func CleanText(raw string) string { return DefaultCleaner().Clean(raw) }

// Clean normalizes raw text. The result contains only lowercase ASCII
// letters separated by single spaces and may be empty. Clean(Clean(x)) == Clean(x).
func (c *Cleaner) Clean(raw string) string {
	// composed and decomposed accents strip the same way: "café" -> "caf"
	text := norm.NFC.String(raw)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonLetterPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	// stripping may have glued a new "http..." run together
	text = urlPattern.ReplaceAllString(text, "")

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := c.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// CleanRecords attaches clean text to every record, keeping order
func (c *Cleaner) CleanRecords(records []model.CommentRecord) []model.CleanedRecord {
	out := make([]model.CleanedRecord, len(records))
	for i, rec := range records {
		out[i] = model.CleanedRecord{CommentRecord: rec, CleanText: c.Clean(rec.Text)}
	}
	return out
}
