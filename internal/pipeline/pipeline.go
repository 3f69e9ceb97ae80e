package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/config"
	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/pkg/utils"
)

// RunResult summarizes a successful run
type RunResult struct {
	VideoID     string                `json:"video_id"`
	Fetched     int                   `json:"fetched"`
	Scored      int                   `json:"scored"`
	Dropped     int                   `json:"dropped"` // records with no text left after cleaning
	RawPath     string                `json:"raw_path"`
	CleanedPath string                `json:"cleaned_path"`
	ScoredPath  string                `json:"scored_path"`
	Artifact    *model.ReportArtifact `json:"artifact"`
	Duration    time.Duration         `json:"duration"`
}

// SourceFactory builds the comment source for one run
type SourceFactory func(ctx context.Context) (CommentSource, error)

// Controller runs fetch, clean, score and report in sequence. Each stage
// writes its flat file and hands its in-memory result to the next stage.
type Controller struct {
	Config    config.Config
	NewSource SourceFactory
	Cleaner   *Cleaner
	Scorer    *Scorer
	Builder   *ReportBuilder
	Logger    *zap.Logger
	Trackers  Trackers
}

// NewController wires the default YouTube source, English cleaner, VADER scorer and report builder
func NewController(cfg config.Config, logger *zap.Logger, trackers ...Tracker) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	builder := NewReportBuilder(utils.NewOutputManager(cfg.Report.OutputDir), cfg.Report.Title, logger)
	builder.Workbook = cfg.WorkbookEnabled()

	return &Controller{
		Config: cfg,
		NewSource: func(ctx context.Context) (CommentSource, error) {
			return NewYouTubeSource(ctx, cfg.YouTube.APIKey)
		},
		Cleaner:  DefaultCleaner(),
		Scorer:   NewScorer(nil),
		Builder:  builder,
		Logger:   logger,
		Trackers: trackers,
	}
}

// Run processes the video named by input with the configured result cap
func (c *Controller) Run(ctx context.Context, input string, trackers ...Tracker) (*RunResult, error) {
	return c.RunLimited(ctx, input, c.Config.YouTube.MaxResults, trackers...)
}

// RunLimited is Run with an explicit cap. The first failing stage aborts the
// run; files written by earlier stages stay on disk.
func (c *Controller) RunLimited(ctx context.Context, input string, maxResults int, trackers ...Tracker) (result *RunResult, err error) {
	start := time.Now()
	tr := append(append(Trackers{}, c.Trackers...), trackers...)
	defer func() {
		if result != nil {
			result.Duration = time.Since(start)
		}
		tr.RunFinished(result, err)
	}()

	videoID, err := ExtractVideoID(input)
	if err != nil {
		err = stageErr(StageInput, KindValidation, err)
		tr.StageFailed(StageInput, err, time.Since(start))
		return nil, err
	}
	source, err := c.NewSource(ctx)
	if err != nil {
		err = stageErr(StageInput, KindValidation, err)
		tr.StageFailed(StageInput, err, time.Since(start))
		return nil, err
	}

	res := &RunResult{
		VideoID:     videoID,
		RawPath:     c.Config.RawPath(),
		CleanedPath: c.Config.CleanedPath(),
		ScoredPath:  c.Config.ScoredPath(),
	}

	// --- FETCH STAGE ---
	var comments []model.CommentRecord
	err = runStage(tr, StageFetch, func() (int, error) {
		fetcher := &Fetcher{Source: source, PageSize: c.Config.YouTube.PageSize, Logger: c.Logger}
		fetched, err := fetcher.Fetch(ctx, videoID, maxResults)
		if err != nil {
			return 0, stageErr(StageFetch, KindRemote, err)
		}
		comments = fetched
		if _, err := WriteRawCSV(res.RawPath, comments); err != nil {
			return 0, stageErr(StageFetch, KindIO, err)
		}
		return len(comments), nil
	})
	if err != nil {
		return nil, err
	}
	res.Fetched = len(comments)

	// --- CLEAN STAGE ---
	var cleaned []model.CleanedRecord
	err = runStage(tr, StageClean, func() (int, error) {
		cleaned = c.Cleaner.CleanRecords(comments)
		if _, err := WriteCleanedCSV(res.CleanedPath, cleaned); err != nil {
			return 0, stageErr(StageClean, KindIO, err)
		}
		return len(cleaned), nil
	})
	if err != nil {
		return nil, err
	}

	// --- SCORE STAGE ---
	var scored []model.ScoredRecord
	err = runStage(tr, StageScore, func() (int, error) {
		scorable, dropped := FilterScorable(cleaned)
		res.Dropped = dropped
		if dropped > 0 {
			c.Logger.Info("Dropped comments with no text after cleaning", zap.Int("dropped", dropped))
		}
		scored = c.Scorer.ScoreRecords(scorable)
		if _, err := WriteScoredCSV(res.ScoredPath, scored); err != nil {
			return 0, stageErr(StageScore, KindIO, err)
		}
		return len(scored), nil
	})
	if err != nil {
		return nil, err
	}
	res.Scored = len(scored)

	// --- REPORT STAGE ---
	err = runStage(tr, StageReport, func() (int, error) {
		artifact, err := c.Builder.Build(scored)
		if err != nil {
			return 0, stageErr(StageReport, KindRendering, err)
		}
		res.Artifact = artifact
		return len(scored), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func runStage(tr Tracker, stage string, fn func() (int, error)) error {
	started := time.Now()
	tr.StageStarted(stage)
	records, err := fn()
	if err != nil {
		tr.StageFailed(stage, err, time.Since(started))
		return err
	}
	tr.StageCompleted(stage, records, time.Since(started))
	return nil
}
