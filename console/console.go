//
// Tencent is pleased to support the open source community by making trpc-evalkit-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-evalkit-go is licensed under the Apache License Version 2.0.
//
//

// Package console provides scoped access to the interactive input surface.
// While an evaluation renders live progress, InputScreen suspends the active
// display, hands the caller a Screen for prompting the user, and restores the
// display on every exit path.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Display coordinates a live status display that must pause while the
// terminal is used for input. Implementations are supplied by the rendering
// layer; the default is a no-op.
type Display interface {
	// Suspend stops live rendering and leaves the terminal free for input.
	Suspend()
	// Resume restarts live rendering. transient reports whether the input
	// screen's output should be discarded from the scrollback.
	Resume(transient bool)
}

type noopDisplay struct{}

func (noopDisplay) Suspend()              {}
func (noopDisplay) Resume(transient bool) {}

var (
	displayMu sync.Mutex
	display   Display = noopDisplay{}
)

// SetDisplay installs the display coordinator. Passing nil restores the
// no-op default.
func SetDisplay(d Display) {
	displayMu.Lock()
	defer displayMu.Unlock()
	if d == nil {
		display = noopDisplay{}
		return
	}
	display = d
}

// Screen is the input surface handed to InputScreen callbacks.
type Screen struct {
	in  *bufio.Reader
	out io.Writer
}

// Print writes a line to the screen.
func (s *Screen) Print(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Input prompts for one line of input and returns it without the trailing
// newline.
func (s *Screen) Input(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// screenIO is replaceable for tests.
var screenIO = struct {
	in  io.Reader
	out io.Writer
}{in: os.Stdin, out: os.Stdout}

var inputMu sync.Mutex

// InputScreen suspends the active display, prints the optional header, and
// runs fn with an input Screen. The display is restored on every exit path,
// including a panic in fn. Concurrent callers are serialized so only one
// input screen owns the terminal at a time.
func InputScreen(header string, transient bool, fn func(*Screen) error) (err error) {
	inputMu.Lock()
	defer inputMu.Unlock()

	displayMu.Lock()
	d := display
	displayMu.Unlock()

	d.Suspend()
	defer d.Resume(transient)

	screen := &Screen{
		in:  bufio.NewReader(screenIO.in),
		out: screenIO.out,
	}
	if header != "" {
		screen.Print("%s", header)
	}
	return fn(screen)
}
