//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"math"

	"trpc.group/trpc-go/trpc-evalkit-go/registry"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
)

func init() {
	MustRegister(accuracy)
	MustRegister(std)
}

// accuracyMetric reports the mean of the float-folded score values.
type accuracyMetric struct {
	registry.Entity
}

func accuracy(params registry.Params) (Metric, error) {
	m := &accuracyMetric{}
	if err := registry.DecodeParams(params, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Compute implements Metric.
func (m *accuracyMetric) Compute(scores []*scorer.Score) scorer.Value {
	if len(scores) == 0 {
		return 0.0
	}
	var sum float64
	for _, score := range scores {
		sum += score.AsFloat()
	}
	return sum / float64(len(scores))
}

// stdMetric reports the population standard deviation of the float-folded
// score values.
type stdMetric struct {
	registry.Entity
}

func std(params registry.Params) (Metric, error) {
	m := &stdMetric{}
	if err := registry.DecodeParams(params, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Compute implements Metric.
func (m *stdMetric) Compute(scores []*scorer.Score) scorer.Value {
	if len(scores) == 0 {
		return 0.0
	}
	var sum float64
	for _, score := range scores {
		sum += score.AsFloat()
	}
	mean := sum / float64(len(scores))
	var variance float64
	for _, score := range scores {
		d := score.AsFloat() - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(scores)))
}
