package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"yt-sentiment-pipeline/internal/model"
)

// ------------------- Comment source -------------------

// CommentPage is one page of a paginated comment listing
type CommentPage struct {
	Comments      []model.CommentRecord
	NextPageToken string
}

// CommentSource lists top-level comments of a video one page at a time
type CommentSource interface {
	ListComments(ctx context.Context, videoID, pageToken string, pageSize int) (CommentPage, error)
}

// YouTubeSource reads commentThreads.list from the YouTube Data API v3
type YouTubeSource struct {
	svc *youtube.Service
}

// NewYouTubeSource builds a client for one run. The key is required.
func NewYouTubeSource(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeSource, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &YouTubeSource{svc: svc}, nil
}

// ListComments fetches a single page of plain-text comment threads
func (s *YouTubeSource) ListComments(ctx context.Context, videoID, pageToken string, pageSize int) (CommentPage, error) {
	call := s.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(int64(pageSize)).
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return CommentPage{}, fmt.Errorf("commentThreads.list failed: %w", err)
	}

	page := CommentPage{
		Comments:      make([]model.CommentRecord, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snip := item.Snippet.TopLevelComment.Snippet
		published, err := time.Parse(time.RFC3339, snip.PublishedAt)
		if err != nil {
			return CommentPage{}, fmt.Errorf("invalid publishedAt %q: %w", snip.PublishedAt, err)
		}
		page.Comments = append(page.Comments, model.CommentRecord{
			Author:    snip.AuthorDisplayName,
			Text:      snip.TextDisplay,
			Likes:     int64(snip.LikeCount),
			Published: published.UTC(),
		})
	}
	return page, nil
}

// ------------------- Fetcher -------------------

// Fetcher accumulates pages from a CommentSource up to a result cap
type Fetcher struct {
	Source   CommentSource
	PageSize int
	Logger   *zap.Logger
}

// Fetch pages through the comments of videoID until maxResults is reached or
// the listing is exhausted. The cap is checked between pages only, so the page
// that crosses it is kept whole and the result may exceed maxResults by up to
// one page. maxResults <= 0 issues no request. Errors are returned as is.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, maxResults int) ([]model.CommentRecord, error) {
	log := f.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	comments := make([]model.CommentRecord, 0)
	pageToken := ""
	pageNum := 0
	for len(comments) < maxResults {
		page, err := f.Source.ListComments(ctx, videoID, pageToken, pageSize)
		if err != nil {
			return nil, err
		}
		pageNum++
		comments = append(comments, page.Comments...)
		log.Info("📄 Fetched comment page",
			zap.String("video_id", videoID),
			zap.Int("page", pageNum),
			zap.Int("page_records", len(page.Comments)),
			zap.Int("total_records", len(comments)),
		)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return comments, nil
}

// ------------------- Scored flat file -------------------

// ReadScoredCSV loads the sentiment-labeled flat file. A header that lacks any
// scored column yields ErrMissingColumns.
func ReadScoredCSV(path string) ([]model.ScoredRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scored file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true
	headers, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file %s", ErrMissingColumns, path)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx, err := ValidateHeader(headers, model.ScoredColumns)
	if err != nil {
		return nil, err
	}

	var records []model.ScoredRecord
	line := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("CSV read error at line %d: %w", line, err)
		}

		rec, err := parseScoredRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseScoredRow(row []string, idx map[string]int) (model.ScoredRecord, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rec model.ScoredRecord
	rec.Author = get("author")
	rec.Text = get("text")
	rec.CleanText = get("clean_text")

	if v := strings.TrimSpace(get("likes")); v != "" {
		likes, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return rec, fmt.Errorf("invalid likes %q: %w", v, err)
		}
		rec.Likes = likes
	}
	if v := strings.TrimSpace(get("published")); v != "" {
		published, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return rec, fmt.Errorf("invalid published %q: %w", v, err)
		}
		rec.Published = published.UTC()
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(get("sentiment_score")), 64)
	if err != nil {
		return rec, fmt.Errorf("invalid sentiment_score %q: %w", get("sentiment_score"), err)
	}
	rec.Score = score
	// label is a function of the score; the stored label is only checked for shape
	if _, ok := model.ParseLabel(get("sentiment_label")); !ok {
		return rec, fmt.Errorf("invalid sentiment_label %q", get("sentiment_label"))
	}
	rec.Label = LabelFor(score)
	return rec, nil
}
