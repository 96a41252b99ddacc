//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Object type constants for Response.Object field.
const (
	// ObjectTypeChatCompletion is the object type for chat completion responses.
	ObjectTypeChatCompletion = "chat.completion"
	// ObjectTypeError is the object type for error responses.
	ObjectTypeError = "error"
)

// Error type constants for ResponseError.Type field.
const (
	ErrorTypeAPIError = "api_error"
)

// Choice represents a single completion choice.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the message content.
	Message Message `json:"message,omitempty"`

	// FinishReason is the reason the choice was finished.
	// "stop", "length", "tool_calls", etc.
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens in the response.
	TotalTokens int `json:"total_tokens"`
}

// Response is the reply from the model: either a text answer or a set of
// tool-call requests carried on the first choice's message.
type Response struct {
	// ID is the unique identifier for this response.
	ID string `json:"id"`

	// Object describes the type of object returned (e.g., "chat.completion").
	Object string `json:"object"`

	// Created is the Unix timestamp when the response was created.
	Created int64 `json:"created"`

	// Model is the model used to generate the response.
	Model string `json:"model"`

	// Choices contains the completion choices.
	Choices []Choice `json:"choices"`

	// Usage contains token usage information when the provider reports it.
	Usage *Usage `json:"usage,omitempty"`

	// Error contains API-level error information if the request failed.
	Error *ResponseError `json:"error,omitempty"`

	// Timestamp when this response was received.
	Timestamp time.Time `json:"timestamp"`
}

// Clone creates a deep copy of the response.
func (rsp *Response) Clone() *Response {
	if rsp == nil {
		return nil
	}
	clone := *rsp
	clone.Choices = make([]Choice, len(rsp.Choices))
	copy(clone.Choices, rsp.Choices)
	if rsp.Usage != nil {
		usage := *rsp.Usage
		clone.Usage = &usage
	}
	if rsp.Error != nil {
		respErr := *rsp.Error
		clone.Error = &respErr
	}
	return &clone
}

// Message returns the first choice's message, or the zero Message.
func (rsp *Response) Message() Message {
	if rsp == nil || len(rsp.Choices) == 0 {
		return Message{}
	}
	return rsp.Choices[0].Message
}

// Completion returns the text content of the first choice, or "".
func (rsp *Response) Completion() string {
	return rsp.Message().Content
}

// IsToolCallResponse checks if the response requests tool calls.
func (rsp *Response) IsToolCallResponse() bool {
	return rsp != nil && len(rsp.Choices) > 0 && len(rsp.Choices[0].Message.ToolCalls) > 0
}

// ToolCalls returns the tool calls requested by the response, if any.
func (rsp *Response) ToolCalls() []ToolCall {
	if rsp == nil || len(rsp.Choices) == 0 {
		return nil
	}
	return rsp.Choices[0].Message.ToolCalls
}

// ResponseError represents an error response from the API.
type ResponseError struct {
	// Message is the error message.
	Message string `json:"message"`

	// Type is the type of error.
	Type string `json:"type"`

	// Code is the error code.
	Code *string `json:"code,omitempty"`
}

// NewTextResponse builds a plain assistant text reply, mainly for tests and
// replay models.
func NewTextResponse(modelName, content string) *Response {
	return &Response{
		ID:        uuid.NewString(),
		Object:    ObjectTypeChatCompletion,
		Created:   time.Now().Unix(),
		Model:     modelName,
		Timestamp: time.Now(),
		Choices: []Choice{{
			Message: NewAssistantMessage(content),
		}},
	}
}

// NewToolCallResponse builds an assistant reply requesting a single tool call
// with the given JSON-encodable arguments.
func NewToolCallResponse(modelName, toolName string, arguments map[string]any) *Response {
	args, err := json.Marshal(arguments)
	if err != nil {
		args = []byte("{}")
	}
	return &Response{
		ID:        uuid.NewString(),
		Object:    ObjectTypeChatCompletion,
		Created:   time.Now().Unix(),
		Model:     modelName,
		Timestamp: time.Now(),
		Choices: []Choice{{
			Message: Message{
				Role: RoleAssistant,
				ToolCalls: []ToolCall{{
					Type: "function",
					ID:   uuid.NewString(),
					Function: FunctionDefinitionParam{
						Name:      toolName,
						Arguments: args,
					},
				}},
			},
		}},
	}
}
