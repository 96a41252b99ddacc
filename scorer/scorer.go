//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package scorer defines how a sample's outcome is graded. A Scorer turns an
// Outcome (the final completion, messages and target) into a Score; scorers
// must be deterministic for identical inputs so re-scoring a stored log is
// reproducible.
package scorer

import (
	"context"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/registry"
)

// Letter-grade score values.
const (
	// Correct marks a fully correct answer.
	Correct = "C"
	// Incorrect marks an incorrect answer.
	Incorrect = "I"
	// Partial marks a partially correct answer.
	Partial = "P"
	// NoAnswer marks a sample where no answer was produced.
	NoAnswer = "N"
)

// Value is a score value: a letter grade, a number, a bool, an ordered
// sequence of scalars, or an ordered mapping of named scalars.
type Value = any

// Score is the graded outcome of one sample.
type Score struct {
	// Value is the score value.
	Value Value `json:"value"`
	// Answer is the answer extracted from the outcome, if any.
	Answer string `json:"answer,omitempty"`
	// Explanation describes how the score was assigned.
	Explanation string `json:"explanation,omitempty"`
	// Metadata carries scorer-specific extras.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AsFloat folds the score's value to a float64 via ValueToFloat.
func (s *Score) AsFloat() float64 {
	return ValueToFloat(s.Value)
}

// Target is the expected answer(s) for a sample. A sample is correct when it
// matches any of them.
type Target []string

// Text returns the primary (first) target, or "".
func (t Target) Text() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Outcome is what a scorer sees of a finished sample.
type Outcome struct {
	// Completion is the final answer: the submitted answer for agent plans, or
	// the model's final text otherwise.
	Completion string `json:"completion"`
	// Messages is the final conversation.
	Messages []model.Message `json:"messages,omitempty"`
	// Target is the expected answer(s).
	Target Target `json:"target,omitempty"`
}

// Scorer grades one sample's outcome.
type Scorer interface {
	Score(ctx context.Context, outcome *Outcome) (*Score, error)
}

// Func adapts a plain function to the Scorer interface.
type Func func(ctx context.Context, outcome *Outcome) (*Score, error)

// Score implements Scorer.
func (f Func) Score(ctx context.Context, outcome *Outcome) (*Score, error) {
	return f(ctx, outcome)
}

// MetricProvider is optionally implemented by scorers that declare the
// metrics to apply when the task lists none.
type MetricProvider interface {
	DefaultMetrics() []string
}

// ValueToFloat folds a score value to a float64 for numeric reductions:
// letter grades map C→1, P→0.5, I and N→0; numbers and numeric strings pass
// through; bools map to 1/0. Anything else folds to 0.
func ValueToFloat(v Value) float64 {
	switch val := v.(type) {
	case string:
		switch strings.TrimSpace(val) {
		case Correct:
			return 1
		case Partial:
			return 0.5
		case Incorrect, NoAnswer:
			return 0
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return 0
	}
}

// named carries registry info for scorers that cannot embed Entity
// themselves, such as Func scorers.
type named struct {
	registry.Entity
	Scorer
}

// DefaultMetrics forwards to the wrapped scorer's declaration, if any.
func (n *named) DefaultMetrics() []string {
	if provider, ok := n.Scorer.(MetricProvider); ok {
		return provider.DefaultMetrics()
	}
	return nil
}

// Register registers a scorer factory in the default registry under the
// factory function's identifier, or the WithName override. Constructed
// instances that cannot carry registry info are wrapped so InfoOf still
// resolves them.
func Register(construct func(registry.Params) (Scorer, error), opt ...registry.Option) (*registry.Handle, error) {
	name := registry.Name(registry.FuncName(construct), opt...)
	return registry.Register(registry.KindScorer, name, func(params registry.Params) (any, error) {
		s, err := construct(params)
		if err != nil {
			return nil, err
		}
		if _, ok := s.(registry.InfoProvider); !ok {
			s = &named{Scorer: s}
		}
		return s, nil
	}, opt...)
}

// MustRegister is Register that panics on error, for declaration-time use.
func MustRegister(construct func(registry.Params) (Scorer, error), opt ...registry.Option) *registry.Handle {
	handle, err := Register(construct, opt...)
	if err != nil {
		panic(err)
	}
	return handle
}

// Create resolves a registered scorer by name and constructs it.
func Create(name string, params registry.Params) (Scorer, error) {
	inst, err := registry.Create(registry.KindScorer, name, params)
	if err != nil {
		return nil, err
	}
	s, ok := inst.(Scorer)
	if !ok {
		return nil, &registry.NotFoundError{Kind: registry.KindScorer, Name: name}
	}
	return s, nil
}
