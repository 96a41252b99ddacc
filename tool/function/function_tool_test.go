//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package function

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-evalkit-go/tool"
)

type additionArgs struct {
	X int `json:"x" jsonschema:"description=First number to add."`
	Y int `json:"y" jsonschema:"description=Second number to add."`
}

func addition() *FunctionTool[additionArgs, int] {
	return New(func(ctx context.Context, args additionArgs) (int, error) {
		return args.X + args.Y, nil
	}, WithName("addition"), WithDescription("Add two numbers."))
}

// TestFunctionToolCall verifies argument unmarshalling and execution.
func TestFunctionToolCall(t *testing.T) {
	ft := addition()
	result, err := ft.Call(context.Background(), []byte(`{"x":1,"y":1}`))
	require.NoError(t, err)
	assert.Equal(t, 2, result)
}

// TestFunctionToolDeclaration verifies the reflected declaration.
func TestFunctionToolDeclaration(t *testing.T) {
	decl := addition().Declaration()
	require.NotNil(t, decl)
	assert.Equal(t, "addition", decl.Name)
	assert.Equal(t, "Add two numbers.", decl.Description)
	require.NotNil(t, decl.InputSchema)
	assert.Equal(t, "object", decl.InputSchema.Type)
	assert.ElementsMatch(t, []string{"x", "y"}, decl.InputSchema.Required)
	assert.Equal(t, "integer", decl.InputSchema.Properties["x"].Type)
	assert.Equal(t, "First number to add.", decl.InputSchema.Properties["x"].Description)
}

// TestFunctionToolBadArguments verifies unmarshal failures become tool errors.
func TestFunctionToolBadArguments(t *testing.T) {
	ft := addition()
	_, err := ft.Call(context.Background(), []byte(`{"x":"one"}`))
	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "addition", toolErr.Tool)
}

// TestWithDeclaration verifies renaming keeps schemas and behavior.
func TestWithDeclaration(t *testing.T) {
	renamed := addition().WithDeclaration("agent_submit", "Submit an answer.")
	decl := renamed.Declaration()
	assert.Equal(t, "agent_submit", decl.Name)
	assert.Equal(t, "Submit an answer.", decl.Description)

	result, err := renamed.Call(context.Background(), []byte(`{"x":2,"y":3}`))
	require.NoError(t, err)
	assert.Equal(t, 5, result)

	// The original is untouched.
	assert.Equal(t, "addition", addition().Declaration().Name)
}

// TestCustomSchemas verifies explicit schemas bypass reflection.
func TestCustomSchemas(t *testing.T) {
	custom := &tool.Schema{Type: "object", Properties: map[string]*tool.Schema{
		"answer": {Type: "string"},
	}, Required: []string{"answer"}}
	ft := New(func(ctx context.Context, args map[string]any) (string, error) {
		return "ok", nil
	}, WithName("custom"), WithDescription("d"), WithInputSchema(custom))
	assert.Same(t, custom, ft.Declaration().InputSchema)
}
