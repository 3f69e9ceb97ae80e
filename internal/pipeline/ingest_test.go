package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"yt-sentiment-pipeline/internal/model"
)

// pagedSource serves totalComments comments in pages and records every request
type pagedSource struct {
	mu            sync.Mutex
	totalComments int
	comments      []model.CommentRecord // served instead of generated comments when set
	err           error
	requests      []string // page tokens in request order
}

func (s *pagedSource) ListComments(_ context.Context, videoID, pageToken string, pageSize int) (CommentPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, pageToken)
	if s.err != nil {
		return CommentPage{}, s.err
	}

	all := s.comments
	if all == nil {
		all = make([]model.CommentRecord, s.totalComments)
		for i := range all {
			all[i] = model.CommentRecord{Author: fmt.Sprintf("user%d", i), Text: "nice video"}
		}
	}

	start := 0
	if pageToken != "" {
		fmt.Sscanf(pageToken, "offset-%d", &start)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	page := CommentPage{Comments: append([]model.CommentRecord(nil), all[start:end]...)}
	if end < len(all) {
		page.NextPageToken = fmt.Sprintf("offset-%d", end)
	}
	return page, nil
}

func TestFetcher_StopsAfterCapIsCrossed(t *testing.T) {
	src := &pagedSource{totalComments: 1000}
	f := &Fetcher{Source: src, PageSize: 100}

	comments, err := f.Fetch(context.Background(), "dQw4w9WgXcQ", 150)
	require.NoError(t, err)
	assert.Len(t, comments, 200)
	assert.Equal(t, []string{"", "offset-100"}, src.requests)
}

func TestFetcher_StopsWhenListingIsExhausted(t *testing.T) {
	src := &pagedSource{totalComments: 250}
	f := &Fetcher{Source: src, PageSize: 100}

	comments, err := f.Fetch(context.Background(), "dQw4w9WgXcQ", 1000)
	require.NoError(t, err)
	assert.Len(t, comments, 250)
	assert.Len(t, src.requests, 3)
	assert.Equal(t, "user249", comments[249].Author)
}

func TestFetcher_ZeroCapIssuesNoRequest(t *testing.T) {
	src := &pagedSource{totalComments: 10}
	f := &Fetcher{Source: src, PageSize: 100}

	comments, err := f.Fetch(context.Background(), "dQw4w9WgXcQ", 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Empty(t, src.requests)
}

func TestFetcher_PropagatesSourceError(t *testing.T) {
	boom := errors.New("quota exceeded")
	f := &Fetcher{Source: &pagedSource{err: boom}}

	_, err := f.Fetch(context.Background(), "dQw4w9WgXcQ", 10)
	assert.ErrorIs(t, err, boom)
}

func TestFetcher_DefaultPageSize(t *testing.T) {
	src := &pagedSource{totalComments: 150}
	f := &Fetcher{Source: src}

	comments, err := f.Fetch(context.Background(), "dQw4w9WgXcQ", 50)
	require.NoError(t, err)
	assert.Len(t, comments, 100)
}

func TestNewYouTubeSource_RequiresKey(t *testing.T) {
	_, err := NewYouTubeSource(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestYouTubeSource_ListComments(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"path":       r.URL.Path,
			"videoId":    q.Get("videoId"),
			"maxResults": q.Get("maxResults"),
			"textFormat": q.Get("textFormat"),
			"pageToken":  q.Get("pageToken"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"nextPageToken": "page-2",
			"items": [
				{"snippet": {"topLevelComment": {"snippet": {
					"authorDisplayName": "alice",
					"textDisplay": "I love this",
					"likeCount": 7,
					"publishedAt": "2024-03-01T10:00:00+02:00"
				}}}},
				{"snippet": {}}
			]
		}`)
	}))
	defer srv.Close()

	src, err := NewYouTubeSource(context.Background(), "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	page, err := src.ListComments(context.Background(), "dQw4w9WgXcQ", "page-1", 100)
	require.NoError(t, err)

	assert.Equal(t, "/youtube/v3/commentThreads", gotQuery["path"])
	assert.Equal(t, "dQw4w9WgXcQ", gotQuery["videoId"])
	assert.Equal(t, "100", gotQuery["maxResults"])
	assert.Equal(t, "plainText", gotQuery["textFormat"])
	assert.Equal(t, "page-1", gotQuery["pageToken"])

	assert.Equal(t, "page-2", page.NextPageToken)
	require.Len(t, page.Comments, 1)
	c := page.Comments[0]
	assert.Equal(t, "alice", c.Author)
	assert.Equal(t, "I love this", c.Text)
	assert.Equal(t, int64(7), c.Likes)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), c.Published)
}

func TestYouTubeSource_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "quota"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	src, err := NewYouTubeSource(context.Background(), "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	_, err = src.ListComments(context.Background(), "dQw4w9WgXcQ", "", 100)
	assert.Error(t, err)
}

func TestReadScoredCSV(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadScoredCSV(filepath.Join(dir, "nope.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		_, err := ReadScoredCSV(path)
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("cleaned file lacks score columns", func(t *testing.T) {
		path := filepath.Join(dir, "cleaned.csv")
		_, err := WriteCleanedCSV(path, []model.CleanedRecord{{CleanText: "x"}})
		require.NoError(t, err)
		_, err = ReadScoredCSV(path)
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("label is derived from the score", func(t *testing.T) {
		path := filepath.Join(dir, "relabel.csv")
		content := "author,text,likes,published,clean_text,sentiment_score,sentiment_label\n" +
			"a,Great,1,2024-01-01T00:00:00Z,great,0.8,negative\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		records, err := ReadScoredCSV(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, model.LabelPositive, records[0].Label)
	})

	t.Run("invalid score", func(t *testing.T) {
		path := filepath.Join(dir, "bad.csv")
		content := "author,text,likes,published,clean_text,sentiment_score,sentiment_label\n" +
			"a,Great,1,2024-01-01T00:00:00Z,great,abc,positive\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := ReadScoredCSV(path)
		assert.Error(t, err)
	})
}
