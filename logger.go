package main

import (
	"os"

	logger "github.com/beka-birhanu/vinom-common/log"
)

// Logger is the leveled logging surface every component takes.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

// NewLogger creates a prefixed, colored logger writing to stdout.
func NewLogger(prefix, color string) (Logger, error) {
	return logger.New(prefix, color, os.Stdout)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
