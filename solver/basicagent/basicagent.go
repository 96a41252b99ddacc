//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package basicagent implements a ReAct-style tool-use loop: the model calls
// tools until it submits an answer through a synthesized submit tool. Submissions
// are graded with the task's scorer; incorrect submissions are retried up to a
// configurable attempt budget.
//
// Always bound the loop (e.g. the task's MaxMessages) or a model that never
// submits will keep the loop running.
package basicagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/scorer"
	"trpc.group/trpc-go/trpc-evalkit-go/solver"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
	"trpc.group/trpc-go/trpc-evalkit-go/tool/function"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

// Defaults for the loop's prompts and the synthesized submit tool.
const (
	DefaultSubmitName        = "submit"
	DefaultSubmitDescription = "Submit an answer for evaluation."

	defaultSystemPrompt = `You are a helpful assistant attempting to submit the correct answer. You have
several functions available to help with finding the answer. Each message may
perform one function call. You will see the result of the function right
after sending the message. If you need to perform multiple actions, you can
always send more messages with subsequent function calls. Do some reasoning
before your actions, describing what function calls you are going to use and
how they fit into your plan.

When you have completed the task and have an answer, call the %s()
function to report it.`

	defaultIncorrectMessage = "Your submission was incorrect. Please proceed and attempt to find the correct answer."
	defaultContinueMessage  = "Please proceed to the next step using your best judgement."
)

// phase is the loop's explicit state. Transitions:
// awaitingModel → awaitingToolResults → awaitingModel → … → submitted | exhausted.
type phase int

const (
	phaseAwaitingModel phase = iota
	phaseAwaitingToolResults
	phaseSubmitted
	phaseExhausted
)

type options struct {
	init              []solver.Solver
	tools             []tool.CallableTool
	maxAttempts       int
	incorrectMessage  string
	continueMessage   string
	submitName        string
	submitDescription string
	scoreValue        func(scorer.Value) float64
}

// Option configures the agent.
type Option func(*options)

// WithInit replaces the default system-prompt initialisation.
func WithInit(init ...solver.Solver) Option {
	return func(o *options) {
		o.init = init
	}
}

// WithTools sets the tools available to the agent, besides submit.
func WithTools(tools ...tool.CallableTool) Option {
	return func(o *options) {
		o.tools = tools
	}
}

// WithMaxAttempts sets how many submissions to accept before terminating.
// The default of 1 means an incorrect first submission ends the loop.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// WithIncorrectMessage sets the user reply sent after an incorrect submission.
func WithIncorrectMessage(message string) Option {
	return func(o *options) {
		o.incorrectMessage = message
	}
}

// WithContinueMessage sets the user reply urging the model on when it makes
// no tool call.
func WithContinueMessage(message string) Option {
	return func(o *options) {
		o.continueMessage = message
	}
}

// WithSubmitName renames the synthesized submit tool.
func WithSubmitName(name string) Option {
	return func(o *options) {
		o.submitName = name
	}
}

// WithSubmitDescription sets the submit tool's description.
func WithSubmitDescription(description string) Option {
	return func(o *options) {
		o.submitDescription = description
	}
}

// WithScoreValue replaces the conversion from score values to floats used to
// decide whether a submission is correct (1.0 is correct).
func WithScoreValue(fn func(scorer.Value) float64) Option {
	return func(o *options) {
		o.scoreValue = fn
	}
}

type submitArgs struct {
	Answer string `json:"answer" jsonschema:"description=Submitted answer"`
}

func submitTool(name, description string) tool.CallableTool {
	base := function.New(func(ctx context.Context, args submitArgs) (string, error) {
		return args.Answer, nil
	}, function.WithName(DefaultSubmitName), function.WithDescription(DefaultSubmitDescription))
	return base.WithDeclaration(name, description)
}

// New builds the agent plan: init solvers, tool installation (user tools plus
// the submit tool, in that order), then the main loop.
func New(opt ...Option) solver.Plan {
	o := &options{
		maxAttempts:       1,
		incorrectMessage:  defaultIncorrectMessage,
		continueMessage:   defaultContinueMessage,
		submitName:        DefaultSubmitName,
		submitDescription: DefaultSubmitDescription,
		scoreValue:        scorer.ValueToFloat,
	}
	for _, op := range opt {
		op(o)
	}
	if len(o.init) == 0 {
		o.init = []solver.Solver{solver.SystemMessage(fmt.Sprintf(defaultSystemPrompt, o.submitName))}
	}

	agentTools := append(append([]tool.CallableTool{}, o.tools...), submitTool(o.submitName, o.submitDescription))

	plan := solver.Plan{}
	plan = append(plan, o.init...)
	plan = append(plan, solver.UseTools(agentTools...))
	plan = append(plan, &loop{options: o})
	return plan
}

// loop is the main agent loop solver.
type loop struct {
	options *options
}

// Solve implements solver.Solver.
func (l *loop) Solve(ctx context.Context, state *solver.TaskState, generate solver.Generate) error {
	o := l.options
	attempts := 0
	current := phaseAwaitingModel
	for current == phaseAwaitingModel {
		if state.Completed || state.MessageLimitExceeded() {
			current = phaseExhausted
			break
		}

		// Model adapter failures are fatal to the sample.
		if err := generate(ctx, state); err != nil {
			return err
		}
		calls := state.Output.ToolCalls()
		if len(calls) == 0 {
			// Model gave up without submitting; urge it to continue.
			state.Completion = state.Output.Completion()
			state.Messages = append(state.Messages, model.NewUserMessage(o.continueMessage))
			continue
		}

		current = phaseAwaitingToolResults
		answer, submitted, err := l.resolveCalls(ctx, state, calls)
		if err != nil {
			return err
		}

		if !submitted {
			state.Messages = append(state.Messages, model.NewUserMessage(o.continueMessage))
			current = phaseAwaitingModel
			continue
		}

		state.Completion = answer
		score, err := state.ScoreSubmission(ctx, answer)
		if err != nil {
			return fmt.Errorf("score submission: %w", err)
		}
		if score == nil || o.scoreValue(score.Value) == 1.0 {
			state.Completed = true
			current = phaseSubmitted
			continue
		}
		attempts++
		if attempts >= o.maxAttempts {
			// Final incorrect submission stands as the answer.
			state.Completed = true
			current = phaseExhausted
			continue
		}
		state.Messages = append(state.Messages, model.NewUserMessage(o.incorrectMessage))
		current = phaseAwaitingModel
	}
	if current == phaseExhausted {
		state.Completed = true
	}
	return nil
}

// resolveCalls executes the reply's tool calls in order, appending a tool
// event and a tool-result message for each. It reports whether one of the
// calls was a submission and the submitted answer.
func (l *loop) resolveCalls(ctx context.Context, state *solver.TaskState, calls []model.ToolCall) (string, bool, error) {
	o := l.options
	var answer string
	submitted := false
	for _, call := range calls {
		name := call.Function.Name
		if name == o.submitName {
			answer = submittedAnswer(call.Function.Arguments)
			state.Transcript.Append(transcript.NewToolEvent(call.ID, name, call.Function.Arguments, answer, ""))
			state.Messages = append(state.Messages, model.NewToolMessage(call.ID, name, answer))
			submitted = true
			continue
		}
		result, errMsg, err := l.invoke(ctx, state, call)
		if err != nil {
			return "", false, err
		}
		state.Transcript.Append(transcript.NewToolEvent(call.ID, name, call.Function.Arguments, result, errMsg))
		content := result
		if errMsg != "" {
			content = "Error: " + errMsg
		}
		state.Messages = append(state.Messages, model.NewToolMessage(call.ID, name, content))
	}
	return answer, submitted, nil
}

// invoke runs one non-submit tool call. Recoverable failures come back as a
// message for the model; fatal errors abort the sample.
func (l *loop) invoke(ctx context.Context, state *solver.TaskState, call model.ToolCall) (result, errMsg string, err error) {
	var target tool.CallableTool
	for _, t := range state.Tools {
		if t.Declaration().Name == call.Function.Name {
			target = t
			break
		}
	}
	if target == nil {
		return "", fmt.Sprintf("tool %q is not available", call.Function.Name), nil
	}
	value, err := tool.Invoke(ctx, target, call.Function.Arguments)
	if err != nil {
		var toolErr *tool.ToolError
		if errors.As(err, &toolErr) {
			return "", toolErr.Message, nil
		}
		return "", "", err
	}
	return fmt.Sprintf("%v", value), "", nil
}

func submittedAnswer(arguments []byte) string {
	var args submitArgs
	if err := json.Unmarshal(arguments, &args); err != nil {
		return ""
	}
	return args.Answer
}
