//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package transcript records what happened during the evaluation of a single
// sample: every model turn, tool invocation, score, and error, in order. A
// transcript is append-only and owned by one sample.
package transcript

import (
	"encoding/json"
	"sync"
	"time"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
)

// Event kinds.
const (
	KindModel = "model"
	KindTool  = "tool"
	KindScore = "score"
	KindError = "error"
)

// Event is one recorded step. Kind selects which field group is populated.
type Event struct {
	// Kind is one of the Kind* constants.
	Kind string `json:"kind"`
	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Model event fields.

	// Input is the conversation sent to the model.
	Input []model.Message `json:"input,omitempty"`
	// Tools are the declarations offered to the model, in offer order.
	Tools []*tool.Declaration `json:"tools,omitempty"`
	// Response is the model's reply.
	Response *model.Response `json:"response,omitempty"`

	// Tool event fields.

	// ID is the tool call ID assigned by the model.
	ID string `json:"id,omitempty"`
	// Function is the name of the invoked tool.
	Function string `json:"function,omitempty"`
	// Arguments is the raw JSON argument payload.
	Arguments json.RawMessage `json:"arguments,omitempty"`
	// Result is the stringified tool result returned to the model.
	Result string `json:"result,omitempty"`

	// Score event fields.

	// Value is the score value assigned by the scorer.
	Value any `json:"value,omitempty"`
	// Answer is the answer extracted by the scorer, if any.
	Answer string `json:"answer,omitempty"`
	// Explanation describes how the score was assigned.
	Explanation string `json:"explanation,omitempty"`

	// Error describes a failure, for tool and error events.
	Error string `json:"error,omitempty"`
}

// Transcript is an ordered, append-only event log. Safe for concurrent use.
type Transcript struct {
	mu     sync.Mutex
	events []*Event
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append records an event, stamping its timestamp if unset.
func (t *Transcript) Append(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

// Events returns a snapshot of the recorded events in order.
func (t *Transcript) Events() []*Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := make([]*Event, len(t.events))
	copy(snapshot, t.events)
	return snapshot
}

// EventsOfKind returns the recorded events of the given kind, in order.
func (t *Transcript) EventsOfKind(kind string) []*Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var matched []*Event
	for _, event := range t.events {
		if event.Kind == kind {
			matched = append(matched, event)
		}
	}
	return matched
}

// Len returns the number of recorded events.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// NewModelEvent records one model turn: the conversation and tool declarations
// that were sent, and the reply that came back.
func NewModelEvent(input []model.Message, tools []*tool.Declaration, rsp *model.Response) *Event {
	return &Event{
		Kind:     KindModel,
		Input:    input,
		Tools:    tools,
		Response: rsp,
	}
}

// NewToolEvent records one tool invocation. errMsg is empty on success.
func NewToolEvent(id, function string, arguments []byte, result, errMsg string) *Event {
	return &Event{
		Kind:      KindTool,
		ID:        id,
		Function:  function,
		Arguments: arguments,
		Result:    result,
		Error:     errMsg,
	}
}

// NewScoreEvent records a score assigned during solving.
func NewScoreEvent(value any, answer, explanation string) *Event {
	return &Event{
		Kind:        KindScore,
		Value:       value,
		Answer:      answer,
		Explanation: explanation,
	}
}

// NewErrorEvent records a sample-fatal failure.
func NewErrorEvent(err error) *Event {
	return &Event{
		Kind:  KindError,
		Error: err.Error(),
	}
}
