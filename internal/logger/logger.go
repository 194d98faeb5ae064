// Package logger builds the zap logger used by the binaries and adapts it
// to the sms.LogFunc hook.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oggyb/zenvia-sms/pkg/sms"
)

// Options configures New.
type Options struct {
	Level string
	// FileName enables a rotated JSON log file when set.
	FileName   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	// Development adds a human readable console core.
	Development bool
	// Console receives console output. Defaults to stdout.
	Console zapcore.WriteSyncer
}

// New builds a zap logger. In development it tees a console encoder on
// opts.Console with the optional file core; otherwise it writes JSON to the
// file, or to opts.Console when no file is configured.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stdout)
	}

	var cores []zapcore.Core
	if opts.FileName != "" {
		cores = append(cores, zapcore.NewCore(jsonEncoder(), fileWriter(opts), level))
	}

	switch {
	case opts.Development:
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, console, level))
	case len(cores) == 0:
		cores = append(cores, zapcore.NewCore(jsonEncoder(), console, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func fileWriter(opts Options) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.FileName,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
	})
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// EventLogger returns an sms.LogFunc that records each send attempt on lg.
func EventLogger(lg *zap.Logger) sms.LogFunc {
	return func(ev sms.LogEvent) {
		fields := []zap.Field{
			zap.String("id", ev.Request.SendSmsRequest.ID),
			zap.String("to", ev.Request.SendSmsRequest.To),
			zap.Int("responseStatus", ev.ResponseStatus),
			zap.Any("response", ev.Response),
		}
		if ev.Request.SendSmsRequest.AggregateID != "" {
			fields = append(fields, zap.String("aggregateId", ev.Request.SendSmsRequest.AggregateID))
		}

		if ev.Error {
			lg.Warn("zenvia send failed", append(fields, zap.Error(ev.Cause))...)
			return
		}
		lg.Info("zenvia send succeeded", fields...)
	}
}
