package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/internal/pipeline"
	"yt-sentiment-pipeline/internal/store"
	"yt-sentiment-pipeline/pkg/utils"
)

const pipelinesPrefix = "/api/v1/pipelines/"

// PipelineHandler serves the pipeline and report endpoints. At most one
// pipeline runs at a time since every run rewrites the same flat files.
type PipelineHandler struct {
	Controller *pipeline.Controller
	Output     *utils.OutputManager
	Logger     *zap.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

func NewPipelineHandler(c *pipeline.Controller, output *utils.OutputManager, logger *zap.Logger) *PipelineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineHandler{Controller: c, Output: output, Logger: logger}
}

// Wait blocks until background runs have finished
func (h *PipelineHandler) Wait() { h.wg.Wait() }

// Running reports whether a pipeline run is in progress
func (h *PipelineHandler) Running() bool { return h.running.Load() }

// CreatePipeline starts a sentiment pipeline run
// @Summary Create a new pipeline
// @Description Start a sentiment pipeline run for a YouTube video id or URL
// @Tags pipelines
// @Accept json
// @Produce json
// @Param pipeline body model.PipelineRequest true "Video to analyze"
// @Success 202 {object} map[string]interface{} "Pipeline started"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 409 {object} map[string]interface{} "A pipeline is already running"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pipelines [post]
func (h *PipelineHandler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req model.PipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// 1. Validate payload
	videoID, err := pipeline.ExtractVideoID(req.Video)
	if err != nil {
		http.Error(w, "A YouTube video ID or URL is required", http.StatusBadRequest)
		return
	}
	if req.MaxResults < 0 {
		http.Error(w, "maxResults must not be negative", http.StatusBadRequest)
		return
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = h.Controller.Config.YouTube.MaxResults
	}

	// 2. Claim the single run slot
	if !h.running.CompareAndSwap(false, true) {
		http.Error(w, "A pipeline is already running", http.StatusConflict)
		return
	}

	// 3. Save job to DB
	job := model.Job{
		ID:         uuid.New().String(),
		VideoID:    videoID,
		MaxResults: maxResults,
		Status:     model.JobPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := store.SaveJob(job); err != nil {
		h.running.Store(false)
		h.Logger.Error("Failed to save job", zap.Error(err))
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	// 4. Start pipeline asynchronously
	h.start(func(ctx context.Context) error {
		_, err := pipeline.RunJob(ctx, h.Controller, job)
		return err
	})

	// 5. Return response
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message":   "Pipeline created successfully!",
		"jobID":     job.ID,
		"videoId":   job.VideoID,
		"status":    job.Status,
		"createdAt": job.CreatedAt,
	})
}

func (h *PipelineHandler) start(run func(ctx context.Context) error) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.running.Store(false)
		if err := run(context.Background()); err != nil {
			h.Logger.Warn("Pipeline run failed", zap.String("message", pipeline.UserMessage(err)))
		}
	}()
}

// ListPipelines retrieves all pipeline jobs
// @Summary List all pipelines
// @Description Get a list of all pipeline jobs with their current status
// @Tags pipelines
// @Produce json
// @Success 200 {array} model.Job "List of pipelines"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pipelines [get]
func (h *PipelineHandler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch pipelines", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetPipeline retrieves a specific pipeline job
// @Summary Get pipeline
// @Description Retrieve details of a specific pipeline job
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} model.Job "Pipeline details"
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Router /pipelines/{id} [get]
func (h *PipelineHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "")
	if !ok {
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		writeStoreError(w, err, "Failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// GetPipelineProgress retrieves per-stage progress
// @Summary Get pipeline progress
// @Description Retrieve per-stage progress of a pipeline job
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} map[string]interface{} "Stage progress"
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Router /pipelines/{id}/progress [get]
func (h *PipelineHandler) GetPipelineProgress(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/progress")
	if !ok {
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		writeStoreError(w, err, "Failed to fetch job")
		return
	}
	progress, err := store.GetStageProgress(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve progress", http.StatusInternalServerError)
		return
	}

	completed := 0
	for _, p := range progress {
		if p.Status == "completed" {
			completed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":           jobID,
		"status":           job.Status,
		"stages":           progress,
		"completed_stages": completed,
		"total_stages":     len(pipeline.Stages),
	})
}

// GetPipelineErrors retrieves errors for a pipeline
// @Summary Get pipeline errors
// @Description Retrieve all errors that occurred during pipeline execution
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} map[string]interface{} "Pipeline errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pipelines/{id}/errors [get]
func (h *PipelineHandler) GetPipelineErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/errors")
	if !ok {
		return
	}

	errs, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": jobID,
		"errors": errs,
		"count":  len(errs),
	})
}

// GetPipelineLogs retrieves stage logs for a pipeline
// @Summary Get pipeline logs
// @Description Retrieve the stage log lines of a pipeline job
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} map[string]interface{} "Pipeline logs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /pipelines/{id}/logs [get]
func (h *PipelineHandler) GetPipelineLogs(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/logs")
	if !ok {
		return
	}

	logs, err := store.GetPipelineLogs(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": jobID,
		"logs":   logs,
		"count":  len(logs),
	})
}

// RetryPipeline reruns a pipeline job for the same video
// @Summary Retry pipeline
// @Description Run a pipeline job again for the same video
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 202 {object} map[string]interface{} "Retry initiated"
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Failure 409 {object} map[string]interface{} "A pipeline is already running"
// @Router /pipelines/{id}/retry [post]
func (h *PipelineHandler) RetryPipeline(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(w, r, "/retry")
	if !ok {
		return
	}

	if _, err := store.GetJob(jobID); err != nil {
		writeStoreError(w, err, "Failed to fetch job")
		return
	}
	if !h.running.CompareAndSwap(false, true) {
		http.Error(w, "A pipeline is already running", http.StatusConflict)
		return
	}

	// Start retry in background
	h.start(func(ctx context.Context) error {
		_, err := pipeline.RetryJob(ctx, h.Controller, jobID)
		return err
	})

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Retry initiated",
		"job_id":  jobID,
		"status":  model.JobPending,
	})
}

// GetReport serves the latest PDF report
// @Summary Latest report
// @Description Download the latest PDF report
// @Tags report
// @Produce application/pdf
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} map[string]interface{} "No report generated yet"
// @Failure 409 {object} map[string]interface{} "A pipeline is running"
// @Router /report [get]
func (h *PipelineHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, r, h.Output.ReportPath())
}

// DownloadFile serves an artifact from the output directory
// @Summary Download artifact
// @Description Download a report artifact from the output directory
// @Tags report
// @Produce octet-stream
// @Param file path string true "File name, e.g. sentiment_report.pdf"
// @Success 200 {file} file "File content"
// @Failure 400 {object} map[string]interface{} "Invalid file name"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Failure 409 {object} map[string]interface{} "A pipeline is running"
// @Router /download/{file} [get]
func (h *PipelineHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/download/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	filePath, err := h.Output.ResolveDownload(r.URL.Path[len(prefix):])
	if err != nil {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}
	h.serveArtifact(w, r, filePath)
}

func (h *PipelineHandler) serveArtifact(w http.ResponseWriter, r *http.Request, filePath string) {
	// artifacts are rewritten in place while a run is active
	if h.running.Load() {
		http.Error(w, "A pipeline is running", http.StatusConflict)
		return
	}
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	fileName := info.Name()
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	w.Header().Set("Content-Type", h.Output.ContentType(fileName))
	http.ServeFile(w, r, filePath)
}

// GetDashboard returns the dashboard view over the scored comments file
// @Summary Sentiment dashboard
// @Description Read the sentiment-labeled comments file and re-render the distribution chart and word clouds
// @Tags report
// @Produce json
// @Success 200 {object} model.DashboardView "Dashboard view"
// @Failure 409 {object} map[string]interface{} "A pipeline is already running"
// @Failure 500 {object} map[string]interface{} "Rendering failed"
// @Router /dashboard [get]
func (h *PipelineHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	// rendering shares the output directory with a running pipeline
	if !h.running.CompareAndSwap(false, true) {
		http.Error(w, "A pipeline is already running", http.StatusConflict)
		return
	}
	defer h.running.Store(false)

	view := pipeline.LoadDashboard(h.Controller.Config.ScoredPath(), pipeline.DefaultTopWords)
	if err := pipeline.RenderDashboard(&view, h.Output, h.Controller.Builder.WordCloud); err != nil {
		h.Logger.Error("Dashboard rendering failed", zap.Error(err))
		http.Error(w, pipeline.UserMessage(err), http.StatusInternalServerError)
		return
	}
	for name, path := range view.Images {
		view.Images[name] = h.Output.GetDownloadURL(path)
	}
	writeJSON(w, http.StatusOK, view)
}

// jobIDFromPath extracts {id} from /api/v1/pipelines/{id}<suffix>
func jobIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	if !strings.HasPrefix(path, pipelinesPrefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	jobID := strings.Trim(path[len(pipelinesPrefix):len(path)-len(suffix)], "/")
	if jobID == "" || strings.Contains(jobID, "/") {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return "", false
	}
	return jobID, true
}

func writeStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, store.ErrJobNotFound) {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
