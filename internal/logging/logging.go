// Package logging configures the diagnostic log. Console output stays
// with the command layer; everything else goes to a log file.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
	root   = logger.Sugar()
)

// Setup directs diagnostic logging to the given file, appending to it
// if it already exists. Before Setup is called all loggers are no-ops,
// which keeps tests quiet.
func Setup(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(f)),
		zap.InfoLevel,
	)

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core)
	root = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
}

// NewLogger returns a named logger backed by the current core.
func NewLogger(name string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return root.Named(name)
}
