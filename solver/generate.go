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
	"trpc.group/trpc-go/trpc-evalkit-go/telemetry"
	"trpc.group/trpc-go/trpc-evalkit-go/transcript"
)

// NewGenerate binds a model to the Generate contract: send the state's
// conversation and tool offers, append the assistant reply, and record a
// model event carrying the offered tool schemas and the response.
func NewGenerate(m model.Model) Generate {
	return func(ctx context.Context, state *TaskState) error {
		req := &model.Request{
			Messages: append([]model.Message{}, state.Messages...),
			Tools:    state.ToolOffers(),
		}
		genCtx, span := telemetry.StartModel(ctx, m.Info().Name)
		rsp, err := m.GenerateContent(genCtx, req)
		if err != nil {
			telemetry.RecordError(span, err)
			span.End()
			state.Transcript.Append(transcript.NewErrorEvent(err))
			return err
		}
		span.End()
		state.Output = rsp
		state.Messages = append(state.Messages, rsp.Message())
		state.Transcript.Append(transcript.NewModelEvent(req.Messages, state.ToolDeclarations(), rsp))
		return nil
	}
}
