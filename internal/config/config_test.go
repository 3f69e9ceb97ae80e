package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{configPathEnv, apiKeyEnv, maxResultsEnv, dataDirEnv, outputDirEnv, serverAddrEnv, dbPathEnv, logLevelEnv} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("data", "sentiment_labeled_comments.csv"), cfg.ScoredPath())
	assert.Equal(t, filepath.Join("data", "raw_comments.csv"), cfg.RawPath())
	assert.Equal(t, filepath.Join("data", "cleaned_comments.csv"), cfg.CleanedPath())
	assert.True(t, cfg.WorkbookEnabled())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeoutDuration())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
youtube:
  apiKey: from-file
  maxResults: 200
  pageSize: 50
storage:
  dataDir: /tmp/comments
report:
  title: My Report
  workbook: false
server:
  addr: ":9090"
logging:
  level: debug
`)
	t.Setenv(apiKeyEnv, "from-env")
	t.Setenv(outputDirEnv, "/tmp/out")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.YouTube.APIKey)
	assert.Equal(t, 200, cfg.YouTube.MaxResults)
	assert.Equal(t, 50, cfg.YouTube.PageSize)
	assert.Equal(t, "/tmp/comments", cfg.Storage.DataDir)
	assert.Equal(t, "raw_comments.csv", cfg.Storage.RawFile)
	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)
	assert.Equal(t, "My Report", cfg.Report.Title)
	assert.False(t, cfg.WorkbookEnabled())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(configPathEnv, writeConfig(t, "youtube:\n  maxResults: 42\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.YouTube.MaxResults)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "youtube: [not a map"))
	assert.Error(t, err)

	t.Setenv(maxResultsEnv, "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.YouTube.PageSize = 500
	cfg.YouTube.MaxResults = -1
	cfg.Report.OutputDir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pageSize")
	assert.Contains(t, err.Error(), "maxResults")
	assert.Contains(t, err.Error(), "outputDir")

	assert.NoError(t, Default().Validate())
}
