package test

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"
)

// ScriptedResult is one queued outcome for a command in MockCommandRunner.
type ScriptedResult struct {
	Output []byte
	Err    error
}

// MockCommandRunner is a shared mock implementation of runner.CommandRunner
// for testing. It tracks executed commands and allows setting up responses,
// errors, and ordered outcome scripts (for simulating a command that fails
// twice and then succeeds).
type MockCommandRunner struct {
	Commands     []string                    // Track executed commands
	Responses    map[string][]byte           // Response by command key (user:command)
	Errors       map[string]error            // Error by command key
	Scripts      map[string][]ScriptedResult // Ordered outcomes, consumed first
	UserCommands map[string][]string         // Track commands by user
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Commands:     []string{},
		Responses:    make(map[string][]byte),
		Errors:       make(map[string]error),
		Scripts:      make(map[string][]ScriptedResult),
		UserCommands: make(map[string][]string),
	}
}

// Run simulates running a command. A scripted outcome for the command is
// consumed first; otherwise the configured error or response applies.
func (r *MockCommandRunner) Run(user, command string) ([]byte, error) {
	key := user + ":" + command
	r.Commands = append(r.Commands, command)
	r.UserCommands[user] = append(r.UserCommands[user], command)

	if queue, ok := r.Scripts[key]; ok && len(queue) > 0 {
		next := queue[0]
		r.Scripts[key] = queue[1:]
		return next.Output, next.Err
	}
	if err, ok := r.Errors[key]; ok {
		return nil, err
	}
	if resp, ok := r.Responses[key]; ok {
		return resp, nil
	}
	return nil, nil
}

// SetResponse configures a response for a specific user:command.
func (r *MockCommandRunner) SetResponse(user, command string, response []byte) {
	r.Responses[user+":"+command] = response
}

// SetError configures an error for a specific user:command.
func (r *MockCommandRunner) SetError(user, command string, err error) {
	r.Errors[user+":"+command] = err
}

// Script queues ordered outcomes for a specific user:command.
func (r *MockCommandRunner) Script(user, command string, results ...ScriptedResult) {
	r.Scripts[user+":"+command] = append(r.Scripts[user+":"+command], results...)
}

// CountCommand returns how many times command was executed for any user.
func (r *MockCommandRunner) CountCommand(command string) int {
	n := 0
	for _, c := range r.Commands {
		if c == command {
			n++
		}
	}
	return n
}

// Reset clears all tracked commands and configurations.
func (r *MockCommandRunner) Reset() {
	r.Commands = []string{}
	r.UserCommands = make(map[string][]string)
	r.Responses = make(map[string][]byte)
	r.Errors = make(map[string]error)
	r.Scripts = make(map[string][]ScriptedResult)
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	Messages []string
	Level    slog.Level
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		Messages: []string{},
		Level:    level,
	}
}

func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		buf.WriteString(" ")
		buf.WriteString(fmt.Sprintf("%v", args[i]))
		buf.WriteString("=")
		buf.WriteString(fmt.Sprintf("%v", args[i+1]))
	}
	l.Messages = append(l.Messages, buf.String())
}

// Reset clears all captured messages.
func (l *MockLogger) Reset() {
	l.Messages = []string{}
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	return l.CountMessages(substring) > 0
}

// CountMessages returns how many captured messages contain the substring.
func (l *MockLogger) CountMessages(substring string) int {
	n := 0
	for _, msg := range l.Messages {
		if bytes.Contains([]byte(msg), []byte(substring)) {
			n++
		}
	}
	return n
}

// FakeClock is a Clock whose sleeps return immediately and are recorded,
// so backoff schedules can be asserted without waiting.
type FakeClock struct {
	Current time.Time
	Sleeps  []time.Duration
}

func NewFakeClock() *FakeClock {
	return &FakeClock{Current: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time { return c.Current }

func (c *FakeClock) Sleep(d time.Duration) {
	c.Sleeps = append(c.Sleeps, d)
	c.Current = c.Current.Add(d)
}

// TotalSlept returns the sum of all recorded sleeps.
func (c *FakeClock) TotalSlept() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps {
		total += d
	}
	return total
}
