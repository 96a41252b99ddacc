//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package tool defines the callable tool contract used by the agent loop.
package tool

import (
	"context"

	"trpc.group/trpc-go/trpc-evalkit-go/registry"
)

// Tool is the interface that all tools must implement.
type Tool interface {
	// Declaration returns the tool's declaration information.
	Declaration() *Declaration
}

// CallableTool is a tool the agent loop can execute with JSON arguments.
type CallableTool interface {
	Tool

	// Call executes the tool with JSON-encoded arguments and returns a single
	// result value.
	Call(ctx context.Context, jsonArgs []byte) (any, error)
}

// Declaration describes a tool to the model.
type Declaration struct {
	// Name is the tool name offered to the model.
	Name string `json:"name"`
	// Description tells the model what the tool does.
	Description string `json:"description"`
	// InputSchema is the JSON schema of the tool's arguments.
	InputSchema *Schema `json:"inputSchema,omitempty"`
	// OutputSchema is the JSON schema of the tool's result.
	OutputSchema *Schema `json:"outputSchema,omitempty"`
}

// Schema is a JSON schema fragment describing tool arguments or results.
type Schema struct {
	// Type is the JSON type: "object", "string", "integer", "number",
	// "boolean" or "array".
	Type string `json:"type,omitempty"`
	// Description describes the schema element.
	Description string `json:"description,omitempty"`
	// Properties holds the schemas of an object's fields.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Required lists the object fields that must be present.
	Required []string `json:"required,omitempty"`
	// Items is the element schema for arrays.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties is the value schema for open maps.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	// Enum restricts the value to a fixed set.
	Enum []any `json:"enum,omitempty"`
	// Ref refers to a schema under $defs.
	Ref string `json:"$ref,omitempty"`
	// Defs holds reusable schema definitions.
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// Declarations returns the declarations of tools in offer order.
func Declarations(tools []CallableTool) []*Declaration {
	decls := make([]*Declaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, t.Declaration())
	}
	return decls
}

// Register adds a tool to the default registry under its declared name.
// The tool itself is the constructed instance; parameters are ignored.
func Register(t CallableTool, opt ...registry.Option) (*registry.Handle, error) {
	name := registry.Name(t.Declaration().Name, opt...)
	return registry.Register(registry.KindTool, name, func(registry.Params) (any, error) {
		return t, nil
	}, opt...)
}
