//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	calls []string
}

func (r *recordingLogger) Debug(args ...any)                 { r.calls = append(r.calls, "debug") }
func (r *recordingLogger) Debugf(format string, args ...any) { r.calls = append(r.calls, "debugf") }
func (r *recordingLogger) Info(args ...any)                  { r.calls = append(r.calls, "info") }
func (r *recordingLogger) Infof(format string, args ...any)  { r.calls = append(r.calls, "infof") }
func (r *recordingLogger) Warn(args ...any)                  { r.calls = append(r.calls, "warn") }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.calls = append(r.calls, "warnf") }
func (r *recordingLogger) Error(args ...any)                 { r.calls = append(r.calls, "error") }
func (r *recordingLogger) Errorf(format string, args ...any) { r.calls = append(r.calls, "errorf") }
func (r *recordingLogger) Fatal(args ...any)                 { r.calls = append(r.calls, "fatal") }
func (r *recordingLogger) Fatalf(format string, args ...any) { r.calls = append(r.calls, "fatalf") }

// TestPackageFuncsDelegateToDefault verifies package-level helpers forward to Default.
func TestPackageFuncsDelegateToDefault(t *testing.T) {
	orig := Default
	defer func() { Default = orig }()

	rec := &recordingLogger{}
	Default = rec

	Debug("d")
	Debugf("%s", "d")
	Info("i")
	Infof("%s", "i")
	Warn("w")
	Warnf("%s", "w")
	Error("e")
	Errorf("%s", "e")

	require.Len(t, rec.calls, 8)
	assert.Equal(t, []string{"debug", "debugf", "info", "infof", "warn", "warnf", "error", "errorf"}, rec.calls)
}

// TestSetLevel verifies level names are accepted without panicking, including unknown ones.
func TestSetLevel(t *testing.T) {
	for _, level := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, "bogus"} {
		assert.NotPanics(t, func() { SetLevel(level) })
	}
	SetLevel(LevelInfo)
}
