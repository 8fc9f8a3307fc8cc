package core

import "fmt"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger implements Logger by writing to stdout
type StdoutLogger struct{}

func (sl *StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewStdoutLogger creates a new stdout logger
func NewStdoutLogger() Logger {
	return &StdoutLogger{}
}

// SilentLogger implements Logger by discarding all output
type SilentLogger struct{}

func (sl *SilentLogger) Printf(format string, args ...interface{}) {}

// NewSilentLogger creates a logger that discards all output
func NewSilentLogger() Logger {
	return &SilentLogger{}
}
