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
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-evalkit-go/log"
	"trpc.group/trpc-go/trpc-evalkit-go/metric"
	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/registry"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
	"trpc.group/trpc-go/trpc-evalkit-go/solver"
	"trpc.group/trpc-go/trpc-evalkit-go/telemetry"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

// Eval runs each task against the model and returns one EvalLog per task, in
// task order. Failures local to one sample are recorded on that sample;
// failures in shared setup (metric resolution, pool creation) abort the run
// before any sample starts.
func Eval(ctx context.Context, tasks []*Task, m model.Model, opt ...Option) ([]*EvalLog, error) {
	opts := newOptions(opt...)
	logs := make([]*EvalLog, 0, len(tasks))
	for _, task := range tasks {
		evalLog, err := evalTask(ctx, task, m, opts)
		if err != nil {
			return nil, fmt.Errorf("eval task %s: %w", task.Name, err)
		}
		logs = append(logs, evalLog)
	}
	return logs, nil
}

type sampleRunParam struct {
	idx         int
	sampleIndex int
	ctx         context.Context
	task        *Task
	plan        solver.Solver
	sample      *Sample
	epoch       int
	model       model.Model
	results     []*SampleResult
	wg          *sync.WaitGroup
}

func (p *sampleRunParam) reset() {
	p.idx = 0
	p.sampleIndex = 0
	p.ctx = nil
	p.task = nil
	p.plan = nil
	p.sample = nil
	p.epoch = 0
	p.model = nil
	p.results = nil
	p.wg = nil
}

var sampleRunParamPool = &sync.Pool{
	New: func() any { return new(sampleRunParam) },
}

func createSampleRunPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*sampleRunParam)
		if !ok {
			panic("sample run pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			sampleRunParamPool.Put(param)
		}()
		param.results[param.idx] = runSample(param.ctx, param.task, param.plan, param.model, param.sample, param.sampleIndex, param.epoch)
	})
	if err != nil {
		return nil, fmt.Errorf("create sample run pool: %w", err)
	}
	return pool, nil
}

func evalTask(ctx context.Context, task *Task, m model.Model, opts *options) (*EvalLog, error) {
	metrics, specs, err := resolveMetrics(task)
	if err != nil {
		return nil, err
	}
	plan := task.Plan
	if plan == nil {
		plan = solver.GenerateSolver()
	}
	pool, err := createSampleRunPool(opts.maxSamples)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	evalLog := &EvalLog{
		RunID:       uuid.NewString(),
		Task:        task.Name,
		Model:       m.Info().Name,
		Status:      StatusSuccess,
		MetricSpecs: specs,
		Stats:       Stats{StartedAt: time.Now()},
	}
	log.Infof("eval: task %s, %d samples, %d epochs, run %s",
		task.Name, len(task.Dataset), opts.epochs, evalLog.RunID)

	results := make([]*SampleResult, len(task.Dataset)*opts.epochs)
	var wg sync.WaitGroup
	for i, sample := range task.Dataset {
		for epoch := 1; epoch <= opts.epochs; epoch++ {
			param := sampleRunParamPool.Get().(*sampleRunParam)
			param.idx = i*opts.epochs + (epoch - 1)
			param.sampleIndex = i
			param.ctx = ctx
			param.task = task
			param.plan = plan
			param.sample = sample
			param.epoch = epoch
			param.model = m
			param.results = results
			param.wg = &wg
			wg.Add(1)
			if err := pool.Invoke(param); err != nil {
				wg.Done()
				idx := param.idx
				param.reset()
				sampleRunParamPool.Put(param)
				results[idx] = &SampleResult{
					ID:    sampleID(sample, i),
					Epoch: epoch,
					Input: sample.Input,
					Error: err.Error(),
				}
			}
		}
	}
	wg.Wait()

	evalLog.Samples = results
	evalLog.Results = assembleResults(task.Scorer, metrics, results)
	evalLog.Stats.CompletedAt = time.Now()
	if ctx.Err() != nil {
		evalLog.Status = StatusError
	}
	return evalLog, nil
}

// runSample evaluates one sample through the plan and grades the outcome.
// Any failure is recorded on the result; it never propagates to other samples.
func runSample(ctx context.Context, task *Task, plan solver.Solver, m model.Model, sample *Sample, index, epoch int) *SampleResult {
	id := sampleID(sample, index)
	state := solver.NewTaskState(id, epoch, sample.Input, sample.Target)
	state.MaxMessages = task.MaxMessages
	state.SetScorer(task.Scorer)

	ctx, span := telemetry.StartSample(ctx, task.Name, id)
	defer span.End()

	result := &SampleResult{
		ID:         id,
		Epoch:      epoch,
		Input:      sample.Input,
		Target:     sample.Target,
		Transcript: state.Transcript,
	}
	if err := plan.Solve(ctx, state, solver.NewGenerate(m)); err != nil {
		log.Errorf("eval: sample %s failed: %v", id, err)
		var adapterErr *model.AdapterError
		if !errors.As(err, &adapterErr) {
			// Adapter failures are already on the transcript.
			state.Transcript.Append(transcript.NewErrorEvent(err))
		}
		result.Error = err.Error()
		result.Messages = state.Messages
		return result
	}
	result.Messages = state.Messages
	result.Output = state.Output
	result.Completion = state.Completion
	if task.Scorer == nil {
		return result
	}
	score, err := task.Scorer.Score(ctx, state.Outcome())
	if err != nil {
		log.Errorf("eval: score sample %s: %v", id, err)
		state.Transcript.Append(transcript.NewErrorEvent(err))
		result.Error = err.Error()
		return result
	}
	result.Score = score
	state.Transcript.Append(transcript.NewScoreEvent(score.Value, score.Answer, score.Explanation))
	return result
}

func sampleID(sample *Sample, index int) string {
	if sample.ID != "" {
		return sample.ID
	}
	return strconv.Itoa(index + 1)
}

// resolveMetrics returns the task's metrics, or the scorer's declared
// defaults, or accuracy. Metric resolution failures abort the run.
func resolveMetrics(task *Task) ([]metric.Metric, []registry.Info, error) {
	if len(task.Metrics) > 0 {
		specs := make([]registry.Info, 0, len(task.Metrics))
		for _, m := range task.Metrics {
			if info, ok := registry.InfoOf(m); ok {
				specs = append(specs, *info)
			}
		}
		return task.Metrics, specs, nil
	}
	names := []string{"accuracy"}
	if provider, ok := task.Scorer.(scorer.MetricProvider); ok {
		if declared := provider.DefaultMetrics(); len(declared) > 0 {
			names = declared
		}
	}
	metrics := make([]metric.Metric, 0, len(names))
	specs := make([]registry.Info, 0, len(names))
	for _, name := range names {
		m, err := metric.Create(name, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve metric %q: %w", name, err)
		}
		metrics = append(metrics, m)
		specs = append(specs, registry.Info{Kind: registry.KindMetric, Name: name})
	}
	return metrics, specs, nil
}

// assembleResults reduces the successful samples' scores with the metrics.
// Failed samples contribute no score.
func assembleResults(sc scorer.Scorer, metrics []metric.Metric, samples []*SampleResult) *Results {
	if sc == nil {
		return &Results{}
	}
	scores := make([]*scorer.Score, 0, len(samples))
	for _, sample := range samples {
		if sample != nil && sample.Error == "" && sample.Score != nil {
			scores = append(scores, sample.Score)
		}
	}
	return &Results{Scores: []*ScoreResult{{
		Name:    scorerName(sc),
		Metrics: metric.Compute(metrics, scores),
	}}}
}

func scorerName(sc scorer.Scorer) string {
	if info, ok := registry.InfoOf(sc); ok {
		return info.Name
	}
	return "scorer"
}
