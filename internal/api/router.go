package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "yt-sentiment-pipeline/docs"
	"yt-sentiment-pipeline/internal/api/handler"
	"yt-sentiment-pipeline/pkg/router"
)

// RegisterRoutes wires the pipeline endpoints, Swagger UI and /metrics.
// gatherer may be nil to skip /metrics.
func RegisterRoutes(r *router.Router, h *handler.PipelineHandler, gatherer prometheus.Gatherer) {
	r.POST("/api/v1/pipelines", h.CreatePipeline)
	r.GET("/api/v1/pipelines", h.ListPipelines)
	// More specific routes first
	r.GET("/api/v1/pipelines/*/errors", h.GetPipelineErrors)
	r.GET("/api/v1/pipelines/*/logs", h.GetPipelineLogs)
	r.GET("/api/v1/pipelines/*/progress", h.GetPipelineProgress)
	r.POST("/api/v1/pipelines/*/retry", h.RetryPipeline)
	// Generic pipeline route last
	r.GET("/api/v1/pipelines/*", h.GetPipeline)

	r.GET("/api/v1/report", h.GetReport)
	r.GET("/api/v1/dashboard", h.GetDashboard)
	r.GET("/api/v1/download/*", h.DownloadFile)

	r.Handle("/swagger/", httpSwagger.WrapHandler)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}
