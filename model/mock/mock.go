//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package mock provides a replay model for tests and dry runs. It returns a
// configured sequence of canned responses in order, falling back to a default
// text reply once the sequence is exhausted.
package mock

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
)

// DefaultModelName is the identifier reported by mock models.
const DefaultModelName = "mock/model"

// DefaultOutput is the fallback completion once canned outputs are exhausted.
const DefaultOutput = "Default output from mock/model"

// Model replays canned responses. Safe for concurrent use; concurrent callers
// consume the shared sequence in arrival order.
type Model struct {
	name          string
	defaultOutput string
	generateFunc  func(ctx context.Context, req *model.Request) (*model.Response, error)
	err           error

	mu      sync.Mutex
	outputs []*model.Response
	next    int
}

// Option configures the mock model.
type Option func(*Model)

// WithName sets the reported model name.
func WithName(name string) Option {
	return func(m *Model) {
		m.name = name
	}
}

// WithOutputs sets the canned responses returned in order.
func WithOutputs(outputs ...*model.Response) Option {
	return func(m *Model) {
		m.outputs = outputs
	}
}

// WithDefaultOutput sets the text returned after outputs are exhausted.
func WithDefaultOutput(content string) Option {
	return func(m *Model) {
		m.defaultOutput = content
	}
}

// WithGenerateFunc replaces replay entirely with a custom function, for tests
// that need request-dependent replies.
func WithGenerateFunc(fn func(ctx context.Context, req *model.Request) (*model.Response, error)) Option {
	return func(m *Model) {
		m.generateFunc = fn
	}
}

// WithError makes every call fail with err, simulating an adapter failure.
func WithError(err error) Option {
	return func(m *Model) {
		m.err = err
	}
}

// New creates a mock model.
func New(opt ...Option) *Model {
	m := &Model{
		name:          DefaultModelName,
		defaultOutput: DefaultOutput,
	}
	for _, o := range opt {
		o(m)
	}
	return m
}

// Info returns basic information about the model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent returns the next canned response.
func (m *Model) GenerateContent(ctx context.Context, req *model.Request) (*model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &model.AdapterError{Model: m.name, Err: err}
	}
	if m.err != nil {
		return nil, &model.AdapterError{Model: m.name, Err: m.err}
	}
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next < len(m.outputs) {
		rsp := m.outputs[m.next]
		m.next++
		return rsp, nil
	}
	return model.NewTextResponse(m.name, m.defaultOutput), nil
}

// ToolCallOutput is shorthand for a canned tool-call reply from this package's
// default model name.
func ToolCallOutput(toolName string, arguments map[string]any) *model.Response {
	return model.NewToolCallResponse(DefaultModelName, toolName, arguments)
}

// TextOutput is shorthand for a canned text reply from this package's default
// model name.
func TextOutput(content string) *model.Response {
	return model.NewTextResponse(DefaultModelName, content)
}
