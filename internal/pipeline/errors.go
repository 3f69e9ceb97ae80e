package pipeline

import (
	"errors"
	"fmt"
)

// Stage names as stored in stage_progress and used as metric labels
const (
	StageInput  = "input"
	StageFetch  = "fetch"
	StageClean  = "clean"
	StageScore  = "score"
	StageReport = "report"

	StageDashboard = "dashboard"
)

// Stages lists the run stages in execution order
var Stages = []string{StageFetch, StageClean, StageScore, StageReport}

// ErrorKind classifies a failure for the operator and for job tracking
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindRemote     ErrorKind = "remote"
	KindData       ErrorKind = "data"
	KindRendering  ErrorKind = "rendering"
	KindIO         ErrorKind = "io"
)

var (
	ErrEmptyVideoID   = errors.New("video identifier is empty")
	ErrMissingAPIKey  = errors.New("YOUTUBE_API_KEY is not set")
	ErrMissingColumns = errors.New("missing required columns")
)

// StageError attributes a failure to the stage that raised it
type StageError struct {
	Stage string
	Kind  ErrorKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// KindOf returns the kind of a *StageError in err's chain, or "" when there is none
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// StageOf returns the stage of a *StageError in err's chain, or ""
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// UserMessage renders a run failure as the single line shown to the operator
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StageError
	if !errors.As(err, &se) {
		return fmt.Sprintf("Pipeline failed: %v", err)
	}
	switch se.Kind {
	case KindValidation:
		return fmt.Sprintf("Invalid input: %v", se.Err)
	case KindRemote:
		return fmt.Sprintf("Could not fetch comments from YouTube: %v", se.Err)
	case KindData:
		return fmt.Sprintf("Data problem in %s stage: %v", se.Stage, se.Err)
	case KindRendering:
		return fmt.Sprintf("Report rendering failed: %v", se.Err)
	default:
		return fmt.Sprintf("Pipeline failed during %s: %v", se.Stage, se.Err)
	}
}
