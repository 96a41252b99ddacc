//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package solver turns a sample into a finished outcome. A Solver advances a
// TaskState, calling generate whenever it needs the model's next reply; a Plan
// chains solvers until one marks the state completed.
package solver

import (
	"context"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
)

// Generate produces the model's next reply for the state's conversation,
// appends the assistant message and records a model event on the transcript.
// The evaluation driver supplies the implementation bound to its model.
type Generate func(ctx context.Context, state *TaskState) error

// Solver advances a task state toward completion.
type Solver interface {
	Solve(ctx context.Context, state *TaskState, generate Generate) error
}

// Func adapts a plain function to the Solver interface.
type Func func(ctx context.Context, state *TaskState, generate Generate) error

// Solve implements Solver.
func (f Func) Solve(ctx context.Context, state *TaskState, generate Generate) error {
	return f(ctx, state, generate)
}

// Plan chains solvers. Each runs in order; the chain stops early once the
// state is completed.
type Plan []Solver

// Solve implements Solver.
func (p Plan) Solve(ctx context.Context, state *TaskState, generate Generate) error {
	for _, s := range p {
		if state.Completed {
			return nil
		}
		if err := s.Solve(ctx, state, generate); err != nil {
			return err
		}
	}
	return nil
}

// SystemMessage returns a solver that inserts a system message after any
// existing system messages at the front of the conversation.
func SystemMessage(content string) Solver {
	return Func(func(ctx context.Context, state *TaskState, generate Generate) error {
		insertAt := 0
		for insertAt < len(state.Messages) && state.Messages[insertAt].Role == model.RoleSystem {
			insertAt++
		}
		messages := make([]model.Message, 0, len(state.Messages)+1)
		messages = append(messages, state.Messages[:insertAt]...)
		messages = append(messages, model.NewSystemMessage(content))
		messages = append(messages, state.Messages[insertAt:]...)
		state.Messages = messages
		return nil
	})
}

// UseTools returns a solver that makes the given tools available to the model.
func UseTools(tools ...tool.CallableTool) Solver {
	return Func(func(ctx context.Context, state *TaskState, generate Generate) error {
		state.Tools = append(state.Tools, tools...)
		return nil
	})
}

// GenerateSolver returns a solver that requests a single model reply, the
// default plan for tasks that configure none.
func GenerateSolver() Solver {
	return Func(func(ctx context.Context, state *TaskState, generate Generate) error {
		if err := generate(ctx, state); err != nil {
			return err
		}
		state.Completed = true
		return nil
	})
}
