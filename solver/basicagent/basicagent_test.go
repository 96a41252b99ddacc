//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package basicagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/model/mock"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
	"trpc.group/trpc-go/trpc-evalkit-go/solver"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
	"trpc.group/trpc-go/trpc-evalkit-go/tool/function"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

type additionArgs struct {
	X int `json:"x" jsonschema:"description=First number to add."`
	Y int `json:"y" jsonschema:"description=Second number to add."`
}

func addition() tool.CallableTool {
	return function.New(func(ctx context.Context, args additionArgs) (int, error) {
		return args.X + args.Y, nil
	}, function.WithName("addition"), function.WithDescription("Add two numbers."))
}

func additionState(t *testing.T) *solver.TaskState {
	t.Helper()
	state := solver.NewTaskState("s1", 1, "What is 1 + 1?", scorer.Target{"2", "2.0", "Two"})
	s, err := scorer.Create("includes", nil)
	require.NoError(t, err)
	state.SetScorer(s)
	return state
}

func submissions(answers ...string) []*model.Response {
	outputs := make([]*model.Response, len(answers))
	for i, answer := range answers {
		outputs[i] = mock.ToolCallOutput(DefaultSubmitName, map[string]any{"answer": answer})
	}
	return outputs
}

// TestSubmitCorrectFirstTry verifies the happy path: one round-trip, one tool
// event for the submission, completed with the submitted answer.
func TestSubmitCorrectFirstTry(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(submissions("2")...)))

	require.NoError(t, New(WithTools(addition())).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	assert.Equal(t, "2", state.Completion)
	assert.Len(t, state.Transcript.EventsOfKind(transcript.KindModel), 1)
	toolEvents := state.Transcript.EventsOfKind(transcript.KindTool)
	require.Len(t, toolEvents, 1)
	assert.Equal(t, DefaultSubmitName, toolEvents[0].Function)
}

// TestDefaultSystemMessage verifies the default init seeds a system prompt
// that names the submit tool.
func TestDefaultSystemMessage(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(submissions("2")...)))

	require.NoError(t, New().Solve(context.Background(), state, generate))
	require.NotEmpty(t, state.Messages)
	assert.Equal(t, model.RoleSystem, state.Messages[0].Role)
	assert.Contains(t, state.Messages[0].Content, "submit()")
}

// TestIncorrectNoRetries verifies max_attempts=1 ends after one incorrect
// submission with exactly one model round-trip recorded.
func TestIncorrectNoRetries(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(submissions("5")...)))

	require.NoError(t, New(WithTools(addition())).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	assert.Equal(t, "5", state.Completion)
	assert.Len(t, state.Transcript.EventsOfKind(transcript.KindModel), 1)

	score, err := state.ScoreSubmission(context.Background(), state.Completion)
	require.NoError(t, err)
	assert.Equal(t, scorer.Incorrect, score.Value)
}

// TestRetriesSucceed verifies max_attempts=3 with answers 5, 4, 2 succeeds on
// the third submission with exactly three model events.
func TestRetriesSucceed(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(submissions("5", "4", "2")...)))

	require.NoError(t, New(WithTools(addition()), WithMaxAttempts(3)).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	assert.Equal(t, "2", state.Completion)
	assert.Len(t, state.Transcript.EventsOfKind(transcript.KindModel), 3)

	// Two incorrect submissions produced two incorrect-message user turns.
	incorrect := 0
	for _, msg := range state.Messages {
		if msg.Role == model.RoleUser && msg.Content == defaultIncorrectMessage {
			incorrect++
		}
	}
	assert.Equal(t, 2, incorrect)
}

// TestCustomSubmitTool verifies a custom submit name and description appear
// verbatim in the recorded model event's schema list and on the tool event.
func TestCustomSubmitTool(t *testing.T) {
	const (
		submitName        = "agent_submit"
		submitDescription = "Submit an answer."
	)
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(
		mock.ToolCallOutput(submitName, map[string]any{"answer": "2"}),
	)))

	agent := New(
		WithInit(solver.SystemMessage("Call agent_submit() when done.")),
		WithTools(addition()),
		WithSubmitName(submitName),
		WithSubmitDescription(submitDescription),
	)
	require.NoError(t, agent.Solve(context.Background(), state, generate))

	assert.Equal(t, "Call agent_submit() when done.", state.Messages[0].Content)

	modelEvents := state.Transcript.EventsOfKind(transcript.KindModel)
	require.Len(t, modelEvents, 1)
	require.Len(t, modelEvents[0].Tools, 2)
	assert.Equal(t, "addition", modelEvents[0].Tools[0].Name)
	assert.Equal(t, submitName, modelEvents[0].Tools[1].Name)
	assert.Equal(t, submitDescription, modelEvents[0].Tools[1].Description)

	toolEvents := state.Transcript.EventsOfKind(transcript.KindTool)
	require.Len(t, toolEvents, 1)
	assert.Equal(t, submitName, toolEvents[0].Function)
}

// TestToolUseLoop verifies a tool round-trip before submission: the tool
// result is recorded and fed back, then the answer is submitted.
func TestToolUseLoop(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(
		mock.ToolCallOutput("addition", map[string]any{"x": 1, "y": 1}),
		mock.ToolCallOutput(DefaultSubmitName, map[string]any{"answer": "2"}),
	)))

	require.NoError(t, New(WithTools(addition())).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	assert.Equal(t, "2", state.Completion)

	toolEvents := state.Transcript.EventsOfKind(transcript.KindTool)
	require.Len(t, toolEvents, 2)
	assert.Equal(t, "addition", toolEvents[0].Function)
	assert.Equal(t, "2", toolEvents[0].Result)
	assert.Equal(t, DefaultSubmitName, toolEvents[1].Function)

	// The addition result went back to the model as a tool message.
	var sawToolMessage bool
	for _, msg := range state.Messages {
		if msg.Role == model.RoleTool && msg.ToolName == "addition" {
			sawToolMessage = true
			assert.Equal(t, "2", msg.Content)
		}
	}
	assert.True(t, sawToolMessage)
}

// TestToolErrorIsRecoverable verifies a failing tool call surfaces to the
// model as an error result instead of aborting the sample.
func TestToolErrorIsRecoverable(t *testing.T) {
	failing := function.New(func(ctx context.Context, args additionArgs) (int, error) {
		return 0, tool.NewError("addition", "overflow")
	}, function.WithName("addition"), function.WithDescription("Add two numbers."))

	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(
		mock.ToolCallOutput("addition", map[string]any{"x": 1, "y": 1}),
		mock.ToolCallOutput(DefaultSubmitName, map[string]any{"answer": "2"}),
	)))

	require.NoError(t, New(WithTools(failing)).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	toolEvents := state.Transcript.EventsOfKind(transcript.KindTool)
	require.Len(t, toolEvents, 2)
	assert.Contains(t, toolEvents[0].Error, "overflow")
}

// TestAdapterErrorAborts verifies a model failure terminates the sample with
// an error and no completion.
func TestAdapterErrorAborts(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithError(assert.AnError)))

	err := New(WithTools(addition())).Solve(context.Background(), state, generate)
	var adapterErr *model.AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.False(t, state.Completed)
}

// TestMessageLimitStopsLoop verifies the conversation cap terminates a model
// that never submits.
func TestMessageLimitStopsLoop(t *testing.T) {
	state := additionState(t)
	state.MaxMessages = 6
	generate := solver.NewGenerate(mock.New()) // always replies with plain text

	require.NoError(t, New(WithTools(addition())).Solve(context.Background(), state, generate))
	assert.True(t, state.Completed)
	assert.LessOrEqual(t, len(state.Messages), 8)
}

// TestContinueMessageOnPlainReply verifies a no-tool-call reply gets the
// continue nudge before the next round-trip.
func TestContinueMessageOnPlainReply(t *testing.T) {
	state := additionState(t)
	generate := solver.NewGenerate(mock.New(mock.WithOutputs(
		mock.TextOutput("Let me think about this."),
		mock.ToolCallOutput(DefaultSubmitName, map[string]any{"answer": "2"}),
	)))

	require.NoError(t, New(WithTools(addition())).Solve(context.Background(), state, generate))

	assert.True(t, state.Completed)
	var sawContinue bool
	for _, msg := range state.Messages {
		if msg.Role == model.RoleUser && msg.Content == defaultContinueMessage {
			sawContinue = true
		}
	}
	assert.True(t, sawContinue)
}
