package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/internal/store"
)

// RunJob runs a stored job and records its progress under the job's id
func RunJob(ctx context.Context, c *Controller, job model.Job, trackers ...Tracker) (*RunResult, error) {
	fmt.Printf("🚀 Starting pipeline for job: %s\n", job.ID)

	tr := append([]Tracker{NewJobTracker(job.ID, c.Logger)}, trackers...)
	result, err := c.RunLimited(ctx, job.VideoID, job.MaxResults, tr...)
	if err != nil {
		fmt.Printf("❌ Job %s failed: %s\n", job.ID, UserMessage(err))
		return nil, err
	}
	fmt.Printf("🏁 Pipeline completed successfully for job: %s in %v\n", job.ID, result.Duration)
	return result, nil
}

// RetryJob reruns an earlier job for the same video under the same job id.
// It is only ever triggered by an operator; runs are never retried automatically.
func RetryJob(ctx context.Context, c *Controller, jobID string, trackers ...Tracker) (*RunResult, error) {
	job, err := store.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	fmt.Printf("🔄 Retrying job %s\n", jobID)

	if err := store.UpdateJobStatus(jobID, model.JobPending); err != nil {
		c.Logger.Warn("Failed to reset job status", zap.String("job_id", jobID), zap.Error(err))
	}
	if err := store.ClearStageProgress(jobID); err != nil {
		c.Logger.Warn("Failed to clear stage progress", zap.String("job_id", jobID), zap.Error(err))
	}
	if err := store.SavePipelineLog(jobID, StageInput, "info", "Retry requested", map[string]interface{}{
		"video_id": job.VideoID,
	}); err != nil {
		c.Logger.Warn("Failed to log retry", zap.String("job_id", jobID), zap.Error(err))
	}
	return RunJob(ctx, c, *job, trackers...)
}
