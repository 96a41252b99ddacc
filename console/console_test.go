//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDisplay struct {
	calls     []string
	transient []bool
}

func (d *recordingDisplay) Suspend() {
	d.calls = append(d.calls, "suspend")
}

func (d *recordingDisplay) Resume(transient bool) {
	d.calls = append(d.calls, "resume")
	d.transient = append(d.transient, transient)
}

func withTestIO(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}
	origIn, origOut := screenIO.in, screenIO.out
	screenIO.in = strings.NewReader(input)
	screenIO.out = out
	t.Cleanup(func() {
		screenIO.in = origIn
		screenIO.out = origOut
		SetDisplay(nil)
	})
	return out
}

// TestInputScreenSuspendResume verifies the display pauses around the scope
// and the transient flag is forwarded.
func TestInputScreenSuspendResume(t *testing.T) {
	out := withTestIO(t, "42\n")
	d := &recordingDisplay{}
	SetDisplay(d)

	var answer string
	err := InputScreen("Question", true, func(s *Screen) error {
		var err error
		answer, err = s.Input("> ")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Equal(t, []string{"suspend", "resume"}, d.calls)
	assert.Equal(t, []bool{true}, d.transient)
	assert.Contains(t, out.String(), "Question")
	assert.Contains(t, out.String(), "> ")
}

// TestInputScreenRestoresOnError verifies the display resumes when fn fails.
func TestInputScreenRestoresOnError(t *testing.T) {
	withTestIO(t, "")
	d := &recordingDisplay{}
	SetDisplay(d)

	wantErr := errors.New("input aborted")
	err := InputScreen("", false, func(s *Screen) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, []string{"suspend", "resume"}, d.calls)
	assert.Equal(t, []bool{false}, d.transient)
}

// TestInputScreenRestoresOnPanic verifies the display resumes when fn panics.
func TestInputScreenRestoresOnPanic(t *testing.T) {
	withTestIO(t, "")
	d := &recordingDisplay{}
	SetDisplay(d)

	assert.Panics(t, func() {
		_ = InputScreen("", true, func(s *Screen) error {
			panic("boom")
		})
	})
	assert.Equal(t, []string{"suspend", "resume"}, d.calls)
}

// TestInputScreenNoHeader verifies no header line is printed when empty.
func TestInputScreenNoHeader(t *testing.T) {
	out := withTestIO(t, "ok\n")
	err := InputScreen("", true, func(s *Screen) error {
		_, err := s.Input("")
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}
