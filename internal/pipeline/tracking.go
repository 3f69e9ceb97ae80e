package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/metrics"
	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/internal/store"
)

// Tracker observes a run stage by stage. Implementations must not fail the run.
type Tracker interface {
	StageStarted(stage string)
	StageCompleted(stage string, records int, elapsed time.Duration)
	StageFailed(stage string, err error, elapsed time.Duration)
	RunFinished(result *RunResult, err error)
}

// Trackers fans every event out to each tracker in order
type Trackers []Tracker

func (ts Trackers) StageStarted(stage string) {
	for _, t := range ts {
		t.StageStarted(stage)
	}
}

func (ts Trackers) StageCompleted(stage string, records int, elapsed time.Duration) {
	for _, t := range ts {
		t.StageCompleted(stage, records, elapsed)
	}
}

func (ts Trackers) StageFailed(stage string, err error, elapsed time.Duration) {
	for _, t := range ts {
		t.StageFailed(stage, err, elapsed)
	}
}

func (ts Trackers) RunFinished(result *RunResult, err error) {
	for _, t := range ts {
		t.RunFinished(result, err)
	}
}

// ------------------- Log tracker -------------------

// LogTracker writes stage transitions to zap
type LogTracker struct {
	Logger *zap.Logger
}

func (t LogTracker) StageStarted(stage string) {
	t.Logger.Info(stageIcon(stage)+" Stage started", zap.String("stage", stage))
}

func (t LogTracker) StageCompleted(stage string, records int, elapsed time.Duration) {
	t.Logger.Info("✅ Stage completed",
		zap.String("stage", stage),
		zap.Int("records", records),
		zap.Duration("elapsed", elapsed),
	)
}

func (t LogTracker) StageFailed(stage string, err error, elapsed time.Duration) {
	t.Logger.Error("❌ Stage failed",
		zap.String("stage", stage),
		zap.String("kind", string(KindOf(err))),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
}

func (t LogTracker) RunFinished(result *RunResult, err error) {
	if err != nil {
		t.Logger.Error("❌ Pipeline failed", zap.String("message", UserMessage(err)))
		return
	}
	t.Logger.Info("🏁 Pipeline completed",
		zap.String("video_id", result.VideoID),
		zap.String("report", result.Artifact.DocumentPath),
		zap.Duration("duration", result.Duration),
	)
}

// ------------------- Progress printer -------------------

// ProgressPrinter prints one line per stage transition for the interactive CLI
type ProgressPrinter struct {
	W io.Writer
}

func (p ProgressPrinter) StageStarted(stage string) {
	fmt.Fprintf(p.W, "%s %s...\n", stageIcon(stage), stageTitle(stage))
}

func (p ProgressPrinter) StageCompleted(stage string, records int, elapsed time.Duration) {
	fmt.Fprintf(p.W, "✅ %s done: %d records (%v)\n", stageTitle(stage), records, elapsed.Round(time.Millisecond))
}

func (p ProgressPrinter) StageFailed(stage string, err error, _ time.Duration) {
	fmt.Fprintf(p.W, "❌ %s failed\n", stageTitle(stage))
}

func (p ProgressPrinter) RunFinished(result *RunResult, err error) {
	if err != nil {
		fmt.Fprintf(p.W, "❌ %s\n", UserMessage(err))
		return
	}
	fmt.Fprintf(p.W, "🏁 Report ready: %s\n", result.Artifact.DocumentPath)
}

func stageTitle(stage string) string {
	switch stage {
	case StageInput:
		return "Checking input"
	case StageFetch:
		return "Fetching comments"
	case StageClean:
		return "Cleaning text"
	case StageScore:
		return "Scoring sentiment"
	case StageReport:
		return "Building report"
	default:
		return stage
	}
}

func stageIcon(stage string) string {
	switch stage {
	case StageFetch:
		return "📥"
	case StageClean:
		return "🔄"
	case StageScore:
		return "🔍"
	case StageReport:
		return "📊"
	default:
		return "➡️"
	}
}

// ------------------- Metrics tracker -------------------

// MetricsTracker records stage durations, record counts and run outcomes
type MetricsTracker struct {
	Metrics *metrics.Metrics
}

func (t MetricsTracker) StageStarted(string) {}

func (t MetricsTracker) StageCompleted(stage string, records int, elapsed time.Duration) {
	t.Metrics.StageDurationSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
	t.Metrics.StageRecordsTotal.WithLabelValues(stage).Add(float64(records))
}

func (t MetricsTracker) StageFailed(stage string, err error, elapsed time.Duration) {
	t.Metrics.StageDurationSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
	t.Metrics.StageFailuresTotal.WithLabelValues(stage, string(KindOf(err))).Inc()
}

func (t MetricsTracker) RunFinished(_ *RunResult, err error) {
	status := model.JobCompleted
	if err != nil {
		status = model.JobFailed
	}
	t.Metrics.RunsTotal.WithLabelValues(status).Inc()
}

// ------------------- Job tracker -------------------

// JobTracker persists the progress of an API-triggered run in the job store.
// Store errors are logged and never interrupt the run.
type JobTracker struct {
	JobID  string
	Logger *zap.Logger

	mu     sync.Mutex
	starts map[string]time.Time
}

func NewJobTracker(jobID string, logger *zap.Logger) *JobTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobTracker{JobID: jobID, Logger: logger, starts: make(map[string]time.Time)}
}

func (t *JobTracker) StageStarted(stage string) {
	startTime := time.Now().UTC()
	t.mu.Lock()
	t.starts[stage] = startTime
	t.mu.Unlock()

	t.check(store.UpdateJobStatus(t.JobID, model.JobRunning))
	t.check(store.SaveStageProgress(t.JobID, stage, "started", &startTime, nil, 0))
	t.check(store.SavePipelineLog(t.JobID, stage, "info", "Starting "+stage+" stage", nil))
}

func (t *JobTracker) StageCompleted(stage string, records int, elapsed time.Duration) {
	startTime, endTime := t.window(stage)
	t.check(store.SaveStageProgress(t.JobID, stage, "completed", &startTime, &endTime, records))
	t.check(store.SavePipelineLog(t.JobID, stage, "info", stageTitle(stage)+" completed", map[string]interface{}{
		"records":     records,
		"duration_ms": elapsed.Milliseconds(),
	}))
}

func (t *JobTracker) StageFailed(stage string, err error, elapsed time.Duration) {
	startTime, endTime := t.window(stage)
	t.check(store.SaveStageProgress(t.JobID, stage, "failed", &startTime, &endTime, 0))
	t.check(store.SavePipelineLog(t.JobID, stage, "error", err.Error(), map[string]interface{}{
		"kind":        string(KindOf(err)),
		"duration_ms": elapsed.Milliseconds(),
	}))
}

func (t *JobTracker) RunFinished(result *RunResult, err error) {
	if err != nil {
		t.check(store.UpdateJobStatus(t.JobID, model.JobFailed))
		t.check(store.SaveJobError(t.JobID, StageOf(err), string(KindOf(err)), errors.New(UserMessage(err))))
		return
	}
	t.check(store.SetJobReport(t.JobID, result.Artifact.DocumentPath))
	t.check(store.UpdateJobStatus(t.JobID, model.JobCompleted))
}

func (t *JobTracker) window(stage string) (time.Time, time.Time) {
	endTime := time.Now().UTC()
	t.mu.Lock()
	startTime, ok := t.starts[stage]
	t.mu.Unlock()
	if !ok {
		startTime = endTime
	}
	return startTime, endTime
}

func (t *JobTracker) check(err error) {
	if err != nil {
		t.Logger.Warn("Failed to persist job progress", zap.String("job_id", t.JobID), zap.Error(err))
	}
}
