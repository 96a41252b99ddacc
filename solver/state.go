//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package solver

import (
	"context"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

// TaskState is the mutable state of one sample's evaluation. It is owned by
// exactly one solver chain; solvers mutate it freely without locking.
type TaskState struct {
	// SampleID identifies the sample within the run.
	SampleID string
	// Epoch is the 1-based repetition index for multi-epoch runs.
	Epoch int
	// Input is the sample's input text.
	Input string
	// Target is the expected answer(s).
	Target scorer.Target
	// Messages is the conversation so far.
	Messages []model.Message
	// Tools are the tools offered to the model, in offer order.
	Tools []tool.CallableTool
	// Output is the most recent model reply.
	Output *model.Response
	// Completion is the final answer once the state completes.
	Completion string
	// Completed marks the state terminal; plans stop advancing it.
	Completed bool
	// MaxMessages caps the conversation length; 0 means unbounded.
	MaxMessages int
	// Transcript records the sample's events in order.
	Transcript *transcript.Transcript

	scorer scorer.Scorer
}

// NewTaskState seeds a state with the sample's input as a user message.
func NewTaskState(sampleID string, epoch int, input string, target scorer.Target) *TaskState {
	return &TaskState{
		SampleID:   sampleID,
		Epoch:      epoch,
		Input:      input,
		Target:     target,
		Messages:   []model.Message{model.NewUserMessage(input)},
		Transcript: transcript.New(),
	}
}

// SetScorer installs the task's scorer so agent solvers can grade submissions
// mid-run.
func (s *TaskState) SetScorer(sc scorer.Scorer) {
	s.scorer = sc
}

// ScoreSubmission grades a candidate answer with the task's scorer. With no
// scorer installed it returns (nil, nil) and the caller accepts the answer.
func (s *TaskState) ScoreSubmission(ctx context.Context, answer string) (*scorer.Score, error) {
	if s.scorer == nil {
		return nil, nil
	}
	return s.scorer.Score(ctx, &scorer.Outcome{
		Completion: answer,
		Messages:   s.Messages,
		Target:     s.Target,
	})
}

// MessageLimitExceeded reports whether the conversation hit MaxMessages.
func (s *TaskState) MessageLimitExceeded() bool {
	return s.MaxMessages > 0 && len(s.Messages) >= s.MaxMessages
}

// ToolOffers returns the state's tools as the model request's tool list.
func (s *TaskState) ToolOffers() []tool.Tool {
	offers := make([]tool.Tool, len(s.Tools))
	for i, t := range s.Tools {
		offers[i] = t
	}
	return offers
}

// ToolDeclarations returns the declarations of the offered tools, in offer
// order, for transcript recording.
func (s *TaskState) ToolDeclarations() []*tool.Declaration {
	declarations := make([]*tool.Declaration, len(s.Tools))
	for i, t := range s.Tools {
		declarations[i] = t.Declaration()
	}
	return declarations
}

// Outcome converts the finished state to what scorers consume.
func (s *TaskState) Outcome() *scorer.Outcome {
	return &scorer.Outcome{
		Completion: s.Completion,
		Messages:   s.Messages,
		Target:     s.Target,
	}
}
