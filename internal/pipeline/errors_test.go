package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageErr_KeepsInnermostStage(t *testing.T) {
	inner := stageErr(StageFetch, KindRemote, errors.New("boom"))
	outer := stageErr(StageReport, KindRendering, fmt.Errorf("wrapped: %w", inner))

	assert.Equal(t, StageFetch, StageOf(outer))
	assert.Equal(t, KindRemote, KindOf(outer))
	assert.Nil(t, stageErr(StageFetch, KindRemote, nil))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{stageErr(StageInput, KindValidation, ErrEmptyVideoID), "Invalid input: video identifier is empty"},
		{stageErr(StageFetch, KindRemote, errors.New("403")), "Could not fetch comments from YouTube: 403"},
		{stageErr(StageDashboard, KindData, ErrMissingColumns), "Data problem in dashboard stage: missing required columns"},
		{stageErr(StageReport, KindRendering, errors.New("no font")), "Report rendering failed: no font"},
		{stageErr(StageClean, KindIO, errors.New("disk full")), "Pipeline failed during clean: disk full"},
		{errors.New("plain"), "Pipeline failed: plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err))
	}
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("x")))
	assert.Equal(t, "", StageOf(errors.New("x")))
}
