// Package logger provides the shared zap logger used across the engine.
// Call Init once at startup; before that, Log is a no-op logger so library
// code (and tests) can log unconditionally.
package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. Defaults to a no-op logger until Init is called.
var Log = zap.NewNop()

// Init replaces the process-wide logger with a real one.
//
// Parameters:
//   - debug: if true, uses the human-readable development config with debug
//     level enabled; otherwise the JSON production config
func Init(debug bool) {
	var err error
	if debug {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		Log = zap.NewNop()
	}
}
