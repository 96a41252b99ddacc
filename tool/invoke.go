//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"trpc.group/trpc-go/trpc-evalkit-go/telemetry"
)

// Invoke validates jsonArgs against the tool's input schema and executes the
// tool. Validation failures and in-tool errors are returned as *ToolError so
// the caller can surface them into the conversation; errors wrapped with
// Fatal and context cancellation propagate unchanged.
func Invoke(ctx context.Context, t CallableTool, jsonArgs []byte) (any, error) {
	decl := t.Declaration()
	if err := validateArguments(decl, jsonArgs); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartTool(ctx, decl.Name)
	defer span.End()
	result, err := t.Call(ctx, jsonArgs)
	if err != nil {
		telemetry.RecordError(span, err)
		var fatal *FatalError
		if errors.As(err, &fatal) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var toolErr *ToolError
		if errors.As(err, &toolErr) {
			return nil, err
		}
		return nil, &ToolError{Tool: decl.Name, Message: err.Error(), Err: err}
	}
	return result, nil
}

// validateArguments checks required fields and primitive types before the
// tool runs, so malformed model output yields a descriptive error message
// instead of an unmarshalling failure deep inside the tool.
func validateArguments(decl *Declaration, jsonArgs []byte) error {
	schema := decl.InputSchema
	if schema == nil || schema.Type != "object" {
		return nil
	}
	args := map[string]any{}
	if len(jsonArgs) > 0 {
		if err := json.Unmarshal(jsonArgs, &args); err != nil {
			return NewError(decl.Name, "arguments are not a JSON object: %v", err)
		}
	}
	for _, required := range schema.Required {
		if _, ok := args[required]; !ok {
			return NewError(decl.Name, "missing required argument %q", required)
		}
	}
	for name, value := range args {
		prop, ok := schema.Properties[name]
		if !ok || prop.Ref != "" {
			continue
		}
		if err := checkType(prop.Type, value); err != nil {
			return NewError(decl.Name, "argument %q: %v", name, err)
		}
	}
	return nil
}

func checkType(schemaType string, value any) error {
	if value == nil {
		return nil
	}
	switch schemaType {
	case "string":
		if _, ok := value.(string); !ok {
			return errors.New("expected a string")
		}
	case "integer":
		f, ok := value.(float64)
		if !ok || f != math.Trunc(f) {
			return errors.New("expected an integer")
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return errors.New("expected a number")
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return errors.New("expected a boolean")
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return errors.New("expected an array")
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return errors.New("expected an object")
		}
	}
	return nil
}
