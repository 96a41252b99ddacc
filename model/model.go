//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package model defines the model contract and conversation types used by the
// evaluation harness. Concrete providers live in subpackages; the harness only
// depends on the Model interface.
package model

import (
	"context"
	"fmt"
)

// Model is the narrow contract between the harness and a provider: turn a
// conversation plus tool declarations into a reply that is either a text
// answer or one or more tool-call requests.
type Model interface {
	// Info returns basic information about the model.
	Info() Info
	// GenerateContent produces the next assistant reply for the request.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
}

// Info holds basic model information.
type Info struct {
	// Name is the model identifier, e.g. "mock/model" or "gpt-4o-mini".
	Name string `json:"name"`
}

// AdapterError reports a failure to obtain any reply from the provider.
// It is fatal to the sample being evaluated but never to the whole run.
type AdapterError struct {
	// Model is the identifier of the failing model.
	Model string
	// Err is the underlying provider error.
	Err error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *AdapterError) Unwrap() error {
	return e.Err
}
