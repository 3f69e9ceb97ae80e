package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"yt-sentiment-pipeline/internal/model"
)

var db *sql.DB

// ErrJobNotFound is returned for unknown job ids
var ErrJobNotFound = errors.New("job not found")

// ErrNotInitialized is returned when a store function runs before InitDB
var ErrNotInitialized = errors.New("job store not initialized")

// Initialize DB connection
func InitDB(dbPath string) error {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	// sqlite allows one writer; a single connection avoids "database is locked"
	conn.SetMaxOpenConns(1)

	// Create tables if not exists
	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			max_results INTEGER NOT NULL,
			status TEXT NOT NULL,
			report_path TEXT NOT NULL DEFAULT '',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			kind TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS stage_progress (
			job_id TEXT,
			stage TEXT,
			status TEXT,
			records INTEGER,
			started_at DATETIME,
			ended_at DATETIME,
			PRIMARY KEY (job_id, stage)
		);`,
		`CREATE TABLE IF NOT EXISTS pipeline_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			level TEXT,
			message TEXT,
			details TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	db = conn
	return nil
}

// Close releases the connection opened by InitDB
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveJob stores a new pipeline job
func SaveJob(job model.Job) error {
	if db == nil {
		return ErrNotInitialized
	}
	created := job.CreatedAt.UTC()
	if job.CreatedAt.IsZero() {
		created = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = model.JobPending
	}
	_, err := db.Exec(`INSERT INTO jobs (id, video_id, max_results, status, report_path, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.VideoID, job.MaxResults, job.Status, job.ReportPath, created, created)
	return err
}

// SaveJobError records an error for a job
func SaveJobError(jobID, stage, kind string, err error) error {
	if err == nil {
		return nil
	}
	if db == nil {
		return ErrNotInitialized
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, stage, kind, error_message, created_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, stage, kind, err.Error(), now)
	return e
}

// GetJobErrors returns the errors of a job, oldest first
func GetJobErrors(jobID string) ([]model.ErrorDetail, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	rows, err := db.Query(`SELECT id, stage, kind, error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	errs := make([]model.ErrorDetail, 0)
	for rows.Next() {
		var e model.ErrorDetail
		if err := rows.Scan(&e.ID, &e.Stage, &e.Kind, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

// ListJobs returns all jobs, newest first
func ListJobs() ([]model.Job, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	rows, err := db.Query(`SELECT id, video_id, max_results, status, report_path, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.VideoID, &j.MaxResults, &j.Status, &j.ReportPath, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// GetJob fetches one job
func GetJob(jobID string) (*model.Job, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	var j model.Job
	err := db.QueryRow(`SELECT id, video_id, max_results, status, report_path, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&j.ID, &j.VideoID, &j.MaxResults, &j.Status, &j.ReportPath, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateJobStatus updates job status
func UpdateJobStatus(jobID string, status string) error {
	if db == nil {
		return ErrNotInitialized
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SetJobReport stores the report path of a finished job
func SetJobReport(jobID, reportPath string) error {
	if db == nil {
		return ErrNotInitialized
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET report_path = ?, updated_at = ? WHERE id = ?`, reportPath, now, jobID)
	return err
}

// SaveStageProgress upserts the state of one stage; a rerun overwrites the previous row
func SaveStageProgress(jobID, stage, status string, startedAt, endedAt *time.Time, records int) error {
	if db == nil {
		return ErrNotInitialized
	}
	_, err := db.Exec(`INSERT INTO stage_progress (job_id, stage, status, records, started_at, ended_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id, stage) DO UPDATE SET status = excluded.status, records = excluded.records,
			started_at = excluded.started_at, ended_at = excluded.ended_at`,
		jobID, stage, status, records, nullTime(startedAt), nullTime(endedAt))
	return err
}

// ClearStageProgress drops the stage rows of a job before it is run again
func ClearStageProgress(jobID string) error {
	if db == nil {
		return ErrNotInitialized
	}
	_, err := db.Exec(`DELETE FROM stage_progress WHERE job_id = ?`, jobID)
	return err
}

// GetStageProgress returns the stage rows of a job in start order
func GetStageProgress(jobID string) ([]model.StageProgress, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	rows, err := db.Query(`SELECT stage, status, records, started_at, ended_at FROM stage_progress WHERE job_id = ? ORDER BY started_at, rowid`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make([]model.StageProgress, 0)
	for rows.Next() {
		var p model.StageProgress
		var startedAt, endedAt sql.NullTime
		if err := rows.Scan(&p.Stage, &p.Status, &p.Records, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		if startedAt.Valid {
			p.StartedAt = &startedAt.Time
		}
		if endedAt.Valid {
			p.EndedAt = &endedAt.Time
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// SavePipelineLog appends a log line for a job
func SavePipelineLog(jobID, stage, level, message string, details map[string]interface{}) error {
	if db == nil {
		return ErrNotInitialized
	}
	detailsJSON := []byte("{}")
	if len(details) > 0 {
		var err error
		if detailsJSON, err = json.Marshal(details); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO pipeline_logs (job_id, stage, level, message, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, stage, level, message, string(detailsJSON), now)
	return err
}

// GetPipelineLogs returns the log lines of a job, oldest first
func GetPipelineLogs(jobID string) ([]model.PipelineLog, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	rows, err := db.Query(`SELECT stage, level, message, details, created_at FROM pipeline_logs WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.PipelineLog, 0)
	for rows.Next() {
		var l model.PipelineLog
		var detailsJSON string
		if err := rows.Scan(&l.Stage, &l.Level, &l.Message, &detailsJSON, &l.CreatedAt); err != nil {
			return nil, err
		}
		if detailsJSON != "" && detailsJSON != "{}" {
			if err := json.Unmarshal([]byte(detailsJSON), &l.Details); err != nil {
				return nil, err
			}
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
