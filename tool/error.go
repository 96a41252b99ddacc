//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package tool

import "fmt"

// ToolError reports a failed tool invocation. It is recoverable: the agent
// loop surfaces it to the model as a tool-result message and continues.
type ToolError struct {
	// Tool is the name of the failing tool.
	Tool string
	// Message describes the failure in terms the model can act on.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("tool error: %s", e.Message)
	}
	return fmt.Sprintf("tool %s: %s", e.Tool, e.Message)
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewError creates a recoverable tool error.
func NewError(tool, format string, args ...any) *ToolError {
	return &ToolError{Tool: tool, Message: fmt.Sprintf(format, args...)}
}

// FatalError wraps a tool failure that must abort the sample instead of being
// surfaced to the model. Tools opt in by returning Fatal(err).
type FatalError struct {
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal tool error: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks err as fatal to the current sample.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}
