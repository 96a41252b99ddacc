//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

// Default run settings.
const (
	defaultMaxSamples = 10
	defaultEpochs     = 1
)

type options struct {
	maxSamples int
	epochs     int
}

// Option configures a run.
type Option func(*options)

// WithMaxSamples sets how many samples run concurrently (default 10).
func WithMaxSamples(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSamples = n
		}
	}
}

// WithEpochs evaluates every sample n times (default 1); all epochs' scores
// feed the metric reduction.
func WithEpochs(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.epochs = n
		}
	}
}

func newOptions(opt ...Option) *options {
	opts := &options{
		maxSamples: defaultMaxSamples,
		epochs:     defaultEpochs,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}
