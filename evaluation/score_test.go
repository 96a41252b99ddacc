//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-evalkit-go/model/mock"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
)

// TestScoreRescoring verifies re-scoring with a different scorer preserves
// sample count and transcripts, changing only scores and metrics.
func TestScoreRescoring(t *testing.T) {
	task := &Task{
		Name:    "rescore",
		Dataset: []*Sample{{Input: "What is 1 + 1?", Target: scorer.Target{"2"}}},
		Scorer:  matchScorer(t),
	}
	// The completion contains but does not equal the target, so match grades
	// it incorrect while includes grades it correct.
	m := mock.New(mock.WithDefaultOutput("The answer is 2"))

	logs, err := Eval(context.Background(), []*Task{task}, m)
	require.NoError(t, err)
	original := logs[0]
	accuracy, ok := original.Results.Scores[0].Metrics.Get("accuracy")
	require.True(t, ok)
	assert.InDelta(t, 0.0, accuracy.Value, 1e-9)
	originalEvents := original.Samples[0].Transcript.Len()

	rescored, err := Score(context.Background(), original, []scorer.Scorer{includesScorer(t)})
	require.NoError(t, err)

	require.Len(t, rescored.Samples, len(original.Samples))
	assert.NotEqual(t, original.RunID, rescored.RunID)
	// Transcripts are reused verbatim.
	assert.Same(t, original.Samples[0].Transcript, rescored.Samples[0].Transcript)
	assert.Equal(t, originalEvents, rescored.Samples[0].Transcript.Len())
	assert.Equal(t, original.Samples[0].Messages, rescored.Samples[0].Messages)

	require.Len(t, rescored.Results.Scores, 1)
	assert.Equal(t, "includes", rescored.Results.Scores[0].Name)
	accuracy, ok = rescored.Results.Scores[0].Metrics.Get("accuracy")
	require.True(t, ok)
	assert.InDelta(t, 1.0, accuracy.Value, 1e-9)
	assert.Equal(t, scorer.Correct, rescored.Samples[0].Score.Value)

	// The original log's scores are untouched.
	assert.Equal(t, scorer.Incorrect, original.Samples[0].Score.Value)
}

// TestScoreMultipleScorers verifies one result entry per scorer, with the
// first scorer's score on the samples.
func TestScoreMultipleScorers(t *testing.T) {
	task := &Task{
		Name:    "multi",
		Dataset: []*Sample{{Input: "q", Target: scorer.Target{"2"}}},
		Scorer:  matchScorer(t),
	}
	logs, err := Eval(context.Background(), []*Task{task}, mock.New(mock.WithDefaultOutput("The answer is 2")))
	require.NoError(t, err)

	rescored, err := Score(context.Background(), logs[0], []scorer.Scorer{matchScorer(t), includesScorer(t)})
	require.NoError(t, err)

	require.Len(t, rescored.Results.Scores, 2)
	assert.Equal(t, "match", rescored.Results.Scores[0].Name)
	assert.Equal(t, "includes", rescored.Results.Scores[1].Name)
	assert.Equal(t, scorer.Incorrect, rescored.Samples[0].Score.Value)
}

// TestScoreSkipsFailedSamples verifies errored samples stay errored and keep
// contributing no score.
func TestScoreSkipsFailedSamples(t *testing.T) {
	original := &EvalLog{
		RunID: "run",
		Samples: []*SampleResult{
			{ID: "1", Completion: "2", Target: scorer.Target{"2"}},
			{ID: "2", Error: "model failure"},
		},
	}
	rescored, err := Score(context.Background(), original, []scorer.Scorer{matchScorer(t)})
	require.NoError(t, err)

	require.NotNil(t, rescored.Samples[0].Score)
	assert.Nil(t, rescored.Samples[1].Score)
	accuracy, ok := rescored.Results.Scores[0].Metrics.Get("accuracy")
	require.True(t, ok)
	assert.InDelta(t, 1.0, accuracy.Value, 1e-9)
}

// TestScoreRequiresScorers verifies the empty scorer list is rejected.
func TestScoreRequiresScorers(t *testing.T) {
	_, err := Score(context.Background(), &EvalLog{}, nil)
	require.Error(t, err)
}
