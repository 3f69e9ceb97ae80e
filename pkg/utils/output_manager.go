package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed artifact names inside the output directory
const (
	ReportFileName       = "sentiment_report.pdf"
	DistributionFileName = "sentiment_distribution.png"
	TimelineFileName     = "sentiment_timeline.png"
	WorkbookFileName     = "sentiment_comments.xlsx"
	DashboardDirName     = "dashboard"
)

// ErrInvalidFileName is returned for download names that try to leave the output directory
var ErrInvalidFileName = errors.New("invalid file name")

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	if err := os.MkdirAll(om.BaseOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Sub returns a manager rooted at a child directory, e.g. the dashboard renders
func (om *OutputManager) Sub(name string) *OutputManager {
	return NewOutputManager(filepath.Join(om.BaseOutputDir, filepath.Base(name)))
}

func (om *OutputManager) ReportPath() string {
	return filepath.Join(om.BaseOutputDir, ReportFileName)
}

func (om *OutputManager) DistributionChartPath() string {
	return filepath.Join(om.BaseOutputDir, DistributionFileName)
}

func (om *OutputManager) TimelineChartPath() string {
	return filepath.Join(om.BaseOutputDir, TimelineFileName)
}

func (om *OutputManager) WorkbookPath() string {
	return filepath.Join(om.BaseOutputDir, WorkbookFileName)
}

// WordCloudPath returns output/wordcloud_<label>.png
func (om *OutputManager) WordCloudPath(label string) string {
	return filepath.Join(om.BaseOutputDir, fmt.Sprintf("wordcloud_%s.png", label))
}

// ResolveDownload maps a download name to a file under the output directory.
// Names may carry one sub-directory ("dashboard/x.png"); anything else is rejected.
func (om *OutputManager) ResolveDownload(name string) (string, error) {
	name = strings.Trim(name, "/")
	parts := strings.Split(name, "/")
	if name == "" || len(parts) > 2 {
		return "", ErrInvalidFileName
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." || p != filepath.Base(p) {
			return "", ErrInvalidFileName
		}
	}
	return filepath.Join(append([]string{om.BaseOutputDir}, parts...)...), nil
}

// GetDownloadURL generates a download URL for an artifact path under the output directory
func (om *OutputManager) GetDownloadURL(path string) string {
	rel, err := filepath.Rel(om.BaseOutputDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return "/api/v1/download/" + filepath.ToSlash(rel)
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".pdf":
		return "pdf"
	case ".png":
		return "png"
	case ".xlsx", ".xls":
		return "excel"
	default:
		return "unknown"
	}
}

// ContentType maps GetFileType to the header served with a download
func (om *OutputManager) ContentType(fileName string) string {
	switch om.GetFileType(fileName) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// GetFileSize returns the size of a file in bytes
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
