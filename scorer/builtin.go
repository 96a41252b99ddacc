//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package scorer

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-evalkit-go/registry"
)

func init() {
	MustRegister(match)
	MustRegister(includes)
}

// matchScorer grades by normalized exact match against any target.
type matchScorer struct {
	registry.Entity
	// IgnoreCase compares case-insensitively when set.
	IgnoreCase bool `mapstructure:"ignore_case"`
}

func match(params registry.Params) (Scorer, error) {
	s := &matchScorer{IgnoreCase: true}
	if err := registry.DecodeParams(params, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Score implements Scorer.
func (s *matchScorer) Score(ctx context.Context, outcome *Outcome) (*Score, error) {
	answer := strings.TrimSpace(outcome.Completion)
	for _, target := range outcome.Target {
		if equalFold(answer, strings.TrimSpace(target), s.IgnoreCase) {
			return &Score{
				Value:       Correct,
				Answer:      answer,
				Explanation: fmt.Sprintf("answer matches target %q", target),
			}, nil
		}
	}
	return &Score{
		Value:       Incorrect,
		Answer:      answer,
		Explanation: fmt.Sprintf("answer does not match target %q", outcome.Target.Text()),
	}, nil
}

// DefaultMetrics implements MetricProvider.
func (s *matchScorer) DefaultMetrics() []string {
	return []string{"accuracy"}
}

// includesScorer grades by substring containment of any target in the answer.
type includesScorer struct {
	registry.Entity
	// IgnoreCase compares case-insensitively when set.
	IgnoreCase bool `mapstructure:"ignore_case"`
}

func includes(params registry.Params) (Scorer, error) {
	s := &includesScorer{IgnoreCase: true}
	if err := registry.DecodeParams(params, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Score implements Scorer.
func (s *includesScorer) Score(ctx context.Context, outcome *Outcome) (*Score, error) {
	answer := strings.TrimSpace(outcome.Completion)
	haystack := answer
	if s.IgnoreCase {
		haystack = strings.ToLower(haystack)
	}
	for _, target := range outcome.Target {
		needle := strings.TrimSpace(target)
		if s.IgnoreCase {
			needle = strings.ToLower(needle)
		}
		if needle != "" && strings.Contains(haystack, needle) {
			return &Score{
				Value:       Correct,
				Answer:      answer,
				Explanation: fmt.Sprintf("answer contains target %q", target),
			}, nil
		}
	}
	return &Score{
		Value:       Incorrect,
		Answer:      answer,
		Explanation: fmt.Sprintf("answer does not contain target %q", outcome.Target.Text()),
	}, nil
}

// DefaultMetrics implements MetricProvider.
func (s *includesScorer) DefaultMetrics() []string {
	return []string{"accuracy"}
}

func equalFold(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
