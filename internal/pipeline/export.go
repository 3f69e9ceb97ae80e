package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"yt-sentiment-pipeline/internal/model"
)

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "xlsx"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	ExportedAt  time.Time `json:"exported_at"`
}

// WriteRawCSV replaces the raw comments flat file
func WriteRawCSV(path string, records []model.CommentRecord) (ExportResult, error) {
	return writeCSV(path, model.RawColumns, len(records), func(i int) []string {
		return rawRow(records[i])
	})
}

// WriteCleanedCSV replaces the cleaned comments flat file
func WriteCleanedCSV(path string, records []model.CleanedRecord) (ExportResult, error) {
	return writeCSV(path, model.CleanedColumns, len(records), func(i int) []string {
		return append(rawRow(records[i].CommentRecord), records[i].CleanText)
	})
}

// WriteScoredCSV replaces the sentiment-labeled flat file
func WriteScoredCSV(path string, records []model.ScoredRecord) (ExportResult, error) {
	return writeCSV(path, model.ScoredColumns, len(records), func(i int) []string {
		rec := records[i]
		row := append(rawRow(rec.CommentRecord), rec.CleanText)
		return append(row, strconv.FormatFloat(rec.Score, 'f', -1, 64), string(rec.Label))
	})
}

func rawRow(rec model.CommentRecord) []string {
	return []string{
		rec.Author,
		rec.Text,
		strconv.FormatInt(rec.Likes, 10),
		rec.Published.UTC().Format(time.RFC3339),
	}
}

func writeCSV(path string, header []string, n int, row func(i int) []string) (ExportResult, error) {
	result := ExportResult{Type: "csv", Path: path}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return result, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return result, fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return result, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
		result.RecordCount++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return result, fmt.Errorf("failed to close %s: %w", path, err)
	}

	result.ExportedAt = time.Now().UTC()
	return result, nil
}

// ExportWorkbook writes the scored comments and the label summary to an XLSX
// workbook with a "Comments" and a "Summary" sheet.
func ExportWorkbook(path string, records []model.ScoredRecord, summary model.SentimentSummary) (ExportResult, error) {
	result := ExportResult{Type: "xlsx", Path: path}

	f := excelize.NewFile()
	defer f.Close()

	const commentsSheet = "Comments"
	if err := f.SetSheetName("Sheet1", commentsSheet); err != nil {
		return result, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(model.ScoredColumns))
	for i, col := range model.ScoredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(commentsSheet, "A1", &header); err != nil {
		return result, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return result, err
		}
		row := []interface{}{
			rec.Author,
			rec.Text,
			rec.Likes,
			rec.Published.UTC().Format(time.RFC3339),
			rec.CleanText,
			rec.Score,
			string(rec.Label),
		}
		if err := f.SetSheetRow(commentsSheet, cell, &row); err != nil {
			return result, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
		result.RecordCount++
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return result, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	rows := [][]interface{}{{"sentiment", "count", "percentage"}}
	for _, l := range model.Labels {
		rows = append(rows, []interface{}{string(l), summary.Counts[l], summary.Percentages[l]})
	}
	totalPct := 0.0
	if summary.Total > 0 {
		totalPct = 100
	}
	rows = append(rows, []interface{}{"total", summary.Total, totalPct})
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return result, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return result, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return result, fmt.Errorf("failed to save workbook: %w", err)
	}

	result.ExportedAt = time.Now().UTC()
	return result, nil
}
