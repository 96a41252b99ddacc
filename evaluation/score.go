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
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-evalkit-go/log"
	"trpc.group/trpc-go/trpc-evalkit-go/metric"
	"trpc.group/trpc-go/trpc-evalkit-go/registry"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
)

// Score re-grades an existing log with a new scorer list, without invoking
// the model again. Sample transcripts and messages are reused verbatim; only
// the samples' scores and the aggregated results are replaced. The first
// scorer's score becomes each sample's score.
func Score(ctx context.Context, evalLog *EvalLog, scorers []scorer.Scorer) (*EvalLog, error) {
	if len(scorers) == 0 {
		return nil, errors.New("score: no scorers")
	}
	rescored := &EvalLog{
		RunID:       uuid.NewString(),
		Task:        evalLog.Task,
		Model:       evalLog.Model,
		Status:      StatusSuccess,
		MetricSpecs: evalLog.MetricSpecs,
		Stats:       Stats{StartedAt: time.Now()},
		Results:     &Results{},
	}
	log.Infof("score: re-scoring run %s with %d scorer(s) as run %s",
		evalLog.RunID, len(scorers), rescored.RunID)

	rescored.Samples = make([]*SampleResult, len(evalLog.Samples))
	for i, sample := range evalLog.Samples {
		clone := *sample
		clone.Score = nil
		rescored.Samples[i] = &clone
	}

	for scorerIndex, sc := range scorers {
		metrics, err := metricsForRescore(evalLog.MetricSpecs, sc)
		if err != nil {
			return nil, err
		}
		scores := make([]*scorer.Score, 0, len(rescored.Samples))
		for _, sample := range rescored.Samples {
			if sample.Error != "" {
				continue
			}
			score, err := sc.Score(ctx, &scorer.Outcome{
				Completion: sample.Completion,
				Messages:   sample.Messages,
				Target:     sample.Target,
			})
			if err != nil {
				return nil, fmt.Errorf("score sample %s: %w", sample.ID, err)
			}
			scores = append(scores, score)
			if scorerIndex == 0 {
				sample.Score = score
			}
		}
		rescored.Results.Scores = append(rescored.Results.Scores, &ScoreResult{
			Name:    scorerName(sc),
			Metrics: metric.Compute(metrics, scores),
		})
	}
	rescored.Stats.CompletedAt = time.Now()
	return rescored, nil
}

// metricsForRescore rebuilds the original metric configuration, or falls back
// to the scorer's declared defaults, then accuracy.
func metricsForRescore(specs []registry.Info, sc scorer.Scorer) ([]metric.Metric, error) {
	if len(specs) == 0 {
		metrics, _, err := resolveMetrics(&Task{Scorer: sc})
		return metrics, err
	}
	metrics := make([]metric.Metric, 0, len(specs))
	for _, spec := range specs {
		m, err := metric.Create(spec.Name, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("resolve metric %q: %w", spec.Name, err)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
