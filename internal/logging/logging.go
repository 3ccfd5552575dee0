// Package logging builds the JSON line logger shared by the server, migrations and CLI.
// Every entry carries ts (RFC3339Nano in the configured location), level and msg.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stdout at the given level ("debug", "info", ...).
func New(level string, loc *time.Location) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return newLogger(zapcore.Lock(os.Stdout), lvl, loc), nil
}

// NewWithWriter returns a debug level logger writing to w.
func NewWithWriter(w io.Writer, loc *time.Location) *zap.Logger {
	return newLogger(zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel, loc)
}

func newLogger(ws zapcore.WriteSyncer, lvl zapcore.LevelEnabler, loc *time.Location) *zap.Logger {
	if loc == nil {
		loc = time.UTC
	}
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		MessageKey:    "msg",
		NameKey:       "component",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(t.In(loc).Format(time.RFC3339Nano))
		},
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	return zap.New(zapcore.NewCore(enc, ws, lvl))
}
