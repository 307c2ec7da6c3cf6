package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	info  = color.New(color.BgBlue).Add(color.FgWhite).Add(color.Bold).SprintFunc()
	warn  = color.New(color.BgYellow).Add(color.FgBlack).Add(color.Bold).SprintFunc()
	fail  = color.New(color.BgRed).Add(color.FgWhite).Add(color.Bold).SprintFunc()
	debug = color.New(color.BgCyan).Add(color.FgWhite).Add(color.Bold).SprintFunc()
)

// Logger prints levelled lines with a coloured badge. A nil *Logger
// discards everything.
type Logger struct {
	// Verbose enables Debug output.
	Verbose bool
	// Out defaults to color.Output (stdout).
	Out io.Writer

	mu sync.Mutex
}

func New(verbose bool) *Logger {
	return &Logger{Verbose: verbose, Out: color.Output}
}

func (logger *Logger) print(badge, format string, args ...interface{}) {
	if logger == nil {
		return
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	out := logger.Out
	if out == nil {
		out = color.Output
	}
	fmt.Fprintf(out, "%s %s\n", badge, fmt.Sprintf(format, args...))
}

func (logger *Logger) Info(format string, args ...interface{}) {
	logger.print(info("INFO"), format, args...)
}

func (logger *Logger) Warn(format string, args ...interface{}) {
	logger.print(warn("WARN"), format, args...)
}

func (logger *Logger) Error(format string, args ...interface{}) {
	logger.print(fail("ERROR"), format, args...)
}

func (logger *Logger) Debug(format string, args ...interface{}) {
	if logger == nil || !logger.Verbose {
		return
	}
	logger.print(debug("DEBUG"), format, args...)
}

// Print writes a line without a badge.
func (logger *Logger) Print(format string, args ...interface{}) {
	if logger == nil {
		return
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	out := logger.Out
	if out == nil {
		out = color.Output
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// Fatal logs an error and exits.
func (logger *Logger) Fatal(format string, args ...interface{}) {
	logger.Error(format, args...)
	os.Exit(1)
}
