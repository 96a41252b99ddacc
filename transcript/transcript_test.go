//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package transcript

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-evalkit-go/model"
	"trpc.group/trpc-go/trpc-evalkit-go/tool"
)

// TestAppendOrder verifies events come back in append order with timestamps.
func TestAppendOrder(t *testing.T) {
	tr := New()
	tr.Append(NewModelEvent(
		[]model.Message{model.NewUserMessage("q")},
		[]*tool.Declaration{{Name: "submit"}},
		model.NewTextResponse("m", "a"),
	))
	tr.Append(NewToolEvent("call_1", "submit", []byte(`{"answer":"a"}`), "", ""))
	tr.Append(NewScoreEvent("C", "a", "exact match"))
	tr.Append(NewErrorEvent(errors.New("boom")))

	events := tr.Events()
	require.Len(t, events, 4)
	assert.Equal(t, KindModel, events[0].Kind)
	assert.Equal(t, KindTool, events[1].Kind)
	assert.Equal(t, KindScore, events[2].Kind)
	assert.Equal(t, KindError, events[3].Kind)
	for _, event := range events {
		assert.False(t, event.Timestamp.IsZero())
	}

	assert.Equal(t, "submit", events[0].Tools[0].Name)
	assert.Equal(t, "submit", events[1].Function)
	assert.Equal(t, "C", events[2].Value)
	assert.Equal(t, "boom", events[3].Error)
}

// TestEventsOfKind verifies kind filtering preserves order.
func TestEventsOfKind(t *testing.T) {
	tr := New()
	tr.Append(NewModelEvent(nil, nil, model.NewTextResponse("m", "one")))
	tr.Append(NewToolEvent("call_1", "addition", []byte(`{}`), "2", ""))
	tr.Append(NewModelEvent(nil, nil, model.NewTextResponse("m", "two")))

	modelEvents := tr.EventsOfKind(KindModel)
	require.Len(t, modelEvents, 2)
	assert.Equal(t, "one", modelEvents[0].Response.Completion())
	assert.Equal(t, "two", modelEvents[1].Response.Completion())
	assert.Len(t, tr.EventsOfKind(KindScore), 0)
}

// TestSnapshotIsolation verifies mutating a snapshot does not affect the transcript.
func TestSnapshotIsolation(t *testing.T) {
	tr := New()
	tr.Append(NewScoreEvent(1.0, "", ""))
	events := tr.Events()
	events[0] = nil
	require.NotNil(t, tr.Events()[0])
}

// TestConcurrentAppend verifies appends from many goroutines are all recorded.
func TestConcurrentAppend(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(NewScoreEvent(1.0, "", ""))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tr.Len())
}
