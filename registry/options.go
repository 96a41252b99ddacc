//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package registry

// Option configures a registration.
type Option func(*options)

type options struct {
	name     string
	defaults Params
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithName overrides the name derived from the factory's declaration.
func WithName(name string) Option {
	return func(opts *options) {
		opts.name = name
	}
}

// WithDefaults records the factory's default parameters on the entry.
func WithDefaults(defaults Params) Option {
	return func(opts *options) {
		opts.defaults = defaults
	}
}

// Name returns the override name from opt, or fallback when none is set.
func Name(fallback string, opt ...Option) string {
	opts := newOptions(opt...)
	if opts.name != "" {
		return opts.name
	}
	return fallback
}
