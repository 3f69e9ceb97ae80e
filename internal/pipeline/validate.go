package pipeline

import (
	"fmt"
	"strings"

	"yt-sentiment-pipeline/internal/model"
)

// ValidateHeader checks that every required column is present and returns
// each column's index. Header names are trimmed and stripped of quotes and BOM.
func ValidateHeader(headers []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		cleanHeader := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cleanHeader = strings.ReplaceAll(cleanHeader, `"`, "")
		if _, seen := idx[cleanHeader]; !seen {
			idx[cleanHeader] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// FilterScorable drops records whose cleaned text is blank. Every record
// handed to the scorer has non-empty clean text.
func FilterScorable(records []model.CleanedRecord) (kept []model.CleanedRecord, dropped int) {
	kept = make([]model.CleanedRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.CleanText) == "" {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, dropped
}
