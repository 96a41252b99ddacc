//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package metric reduces per-sample scores into reportable values. A metric
// may return a scalar, an ordered sequence, or an ordered mapping; Compute
// flattens these into one insertion-ordered name→result mapping.
package metric

import (
	"fmt"
	"reflect"

	orderedmap "github.com/elliotchance/orderedmap/v3"

	"trpc.group/trpc-go/trpc-evalkit-go/registry"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
)

// Metric is a pure reduction over all samples' scores.
type Metric interface {
	Compute(scores []*scorer.Score) scorer.Value
}

// Func adapts a plain function to the Metric interface.
type Func func(scores []*scorer.Score) scorer.Value

// Compute implements Metric.
func (f Func) Compute(scores []*scorer.Score) scorer.Value {
	return f(scores)
}

// Result is one reported metric value.
type Result struct {
	// Name is the key the value is reported under.
	Name string `json:"name"`
	// Value is the reduced value.
	Value float64 `json:"value"`
}

// Compute applies each metric to the full score list, in order, and flattens
// the returned values into one ordered mapping:
//   - a scalar is keyed by the metric's name;
//   - a sequence yields "{name}-1".."{name}-N" in sequence order;
//   - an ordered mapping contributes its own keys in its own order.
//
// Entries from later metrics follow entries from earlier metrics. A colliding
// key is overwritten by the later entry, keeping its original position;
// last-write-wins is deliberate, not incidental.
func Compute(metrics []Metric, scores []*scorer.Score) *orderedmap.OrderedMap[string, *Result] {
	results := orderedmap.NewOrderedMap[string, *Result]()
	for _, m := range metrics {
		name := nameOf(m)
		switch value := m.Compute(scores).(type) {
		case []float64:
			for i, v := range value {
				key := fmt.Sprintf("%s-%d", name, i+1)
				results.Set(key, &Result{Name: key, Value: v})
			}
		case *orderedmap.OrderedMap[string, float64]:
			for key, v := range value.AllFromFront() {
				results.Set(key, &Result{Name: key, Value: v})
			}
		default:
			results.Set(name, &Result{Name: name, Value: scorer.ValueToFloat(value)})
		}
	}
	return results
}

func nameOf(m Metric) string {
	if info, ok := registry.InfoOf(m); ok {
		return info.Name
	}
	if name := registry.FuncName(m); name != "" {
		return name
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return "metric"
}

// named carries registry info for metrics that cannot embed Entity
// themselves, such as Func reductions.
type named struct {
	registry.Entity
	Metric
}

// Register registers a metric factory in the default registry under the
// factory function's identifier, or the WithName override. Constructed
// instances that cannot carry registry info are wrapped so InfoOf still
// resolves them.
func Register(construct func(registry.Params) (Metric, error), opt ...registry.Option) (*registry.Handle, error) {
	name := registry.Name(registry.FuncName(construct), opt...)
	return registry.Register(registry.KindMetric, name, func(params registry.Params) (any, error) {
		m, err := construct(params)
		if err != nil {
			return nil, err
		}
		if _, ok := m.(registry.InfoProvider); !ok {
			m = &named{Metric: m}
		}
		return m, nil
	}, opt...)
}

// MustRegister is Register that panics on error, for declaration-time use.
func MustRegister(construct func(registry.Params) (Metric, error), opt ...registry.Option) *registry.Handle {
	handle, err := Register(construct, opt...)
	if err != nil {
		panic(err)
	}
	return handle
}

// Create resolves a registered metric by name and constructs it with the
// given parameters, propagating construction-time validation errors.
func Create(name string, params registry.Params) (Metric, error) {
	inst, err := registry.Create(registry.KindMetric, name, params)
	if err != nil {
		return nil, err
	}
	m, ok := inst.(Metric)
	if !ok {
		return nil, &registry.NotFoundError{Kind: registry.KindMetric, Name: name}
	}
	return m, nil
}
