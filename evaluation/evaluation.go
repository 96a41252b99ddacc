//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluation runs tasks: each sample of a task's dataset goes through
// the task's plan against a model, outcomes are graded by the task's scorer,
// and the per-sample scores are reduced by the task's metrics into an EvalLog.
package evaluation

import (
	"time"

	orderedmap "github.com/elliotchance/orderedmap/v3"

	"trpc.group/trpc-go/trpc-evalkit-go/metric"
	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/registry"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
	"trpc.group/trpc-go/trpc-evalkit-go/solver"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

// Run statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Sample is one input/target pair evaluated independently within a task.
type Sample struct {
	// ID identifies the sample; defaults to its 1-based dataset position.
	ID string `json:"id,omitempty"`
	// Input is the sample's input text.
	Input string `json:"input"`
	// Target is the expected answer(s).
	Target scorer.Target `json:"target,omitempty"`
	// Metadata carries dataset-specific extras.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Task is a dataset plus a plan, a scorer and a list of metrics.
type Task struct {
	// Name identifies the task in logs.
	Name string
	// Dataset is the ordered samples to evaluate.
	Dataset []*Sample
	// Plan solves each sample; nil means a one-shot generate.
	Plan solver.Solver
	// Scorer grades each sample's outcome; nil records no scores.
	Scorer scorer.Scorer
	// Metrics reduce the score list; empty falls back to the scorer's
	// declared defaults, then to accuracy.
	Metrics []metric.Metric
	// MaxMessages caps each sample's conversation length; 0 means unbounded.
	MaxMessages int
}

// SampleResult is the outcome of one sample's evaluation.
type SampleResult struct {
	// ID is the sample's identifier.
	ID string `json:"id"`
	// Epoch is the 1-based repetition index.
	Epoch int `json:"epoch"`
	// Input is the sample's input text.
	Input string `json:"input"`
	// Target is the expected answer(s).
	Target scorer.Target `json:"target,omitempty"`
	// Messages is the final conversation.
	Messages []model.Message `json:"messages,omitempty"`
	// Output is the last model reply.
	Output *model.Response `json:"output,omitempty"`
	// Completion is the final answer.
	Completion string `json:"completion,omitempty"`
	// Transcript is the sample's ordered event log.
	Transcript *transcript.Transcript `json:"transcript,omitempty"`
	// Score is the graded outcome; nil for failed samples.
	Score *scorer.Score `json:"score,omitempty"`
	// Error is set when the sample failed; such samples contribute no score.
	Error string `json:"error,omitempty"`
}

// ScoreResult is one scorer's aggregated metrics.
type ScoreResult struct {
	// Name is the scorer's registry name, or "scorer" when unregistered.
	Name string `json:"name"`
	// Metrics maps metric output keys to results, in reduction order.
	Metrics *orderedmap.OrderedMap[string, *metric.Result] `json:"metrics"`
}

// Results is the aggregated outcome of one run.
type Results struct {
	// Scores holds one entry per scorer.
	Scores []*ScoreResult `json:"scores"`
}

// Stats are the run's timings.
type Stats struct {
	// StartedAt is when the run started.
	StartedAt time.Time `json:"started_at"`
	// CompletedAt is when the run finished.
	CompletedAt time.Time `json:"completed_at"`
}

// EvalLog is the full record of one task evaluation.
type EvalLog struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Task is the task's name.
	Task string `json:"task"`
	// Model is the evaluated model's name.
	Model string `json:"model"`
	// Status is success unless shared setup failed.
	Status string `json:"status"`
	// Samples holds the per-sample results in dataset order.
	Samples []*SampleResult `json:"samples"`
	// Results holds the aggregated metrics.
	Results *Results `json:"results"`
	// MetricSpecs records the task's metric configuration so re-scoring can
	// rebuild the same reductions.
	MetricSpecs []registry.Info `json:"metric_specs,omitempty"`
	// Stats holds run timings.
	Stats Stats `json:"stats"`
}
