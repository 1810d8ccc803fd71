// Package logger provides the leveled console logger used by the sweep CLI.
// Messages are prefixed with [HH:MM:SS] timestamps; color is applied per
// level when enabled.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// Console logs to a writer with level filtering and optional color.
// It is safe for concurrent use.
type Console struct {
	writer io.Writer
	level  int
	color  bool
	mu     sync.Mutex
}

// NewConsole creates a console logger. Valid levels are debug, info, warn
// and error (case-insensitive); anything else defaults to info. A nil
// writer discards all output.
func NewConsole(w io.Writer, level string, useColor bool) *Console {
	return &Console{
		writer: w,
		level:  parseLevel(level),
		color:  useColor,
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level message.
func (c *Console) Debugf(format string, args ...any) {
	c.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs an info-level message.
func (c *Console) Infof(format string, args ...any) {
	c.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs a warn-level message.
func (c *Console) Warnf(format string, args ...any) {
	c.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs an error-level message.
func (c *Console) Errorf(format string, args ...any) {
	c.logf(levelError, "ERROR", format, args...)
}

func (c *Console) logf(level int, tag, format string, args ...any) {
	if c.writer == nil || level < c.level {
		return
	}

	ts := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)

	if c.color {
		tag = levelColor(level).Sprint(tag)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, "[%s] %s %s\n", ts, tag, msg)
}

func levelColor(level int) *color.Color {
	switch level {
	case levelDebug:
		return color.New(color.FgCyan)
	case levelWarn:
		return color.New(color.FgYellow)
	case levelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgGreen)
	}
}
