// Package monitoring provides the observability implementations: zap-backed
// logging, Prometheus metrics, and OpenTelemetry tracing.
package monitoring

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/pkg/logger"
)

type ZapLogger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

// NewZapLogger creates the production logger from the log config. Output is
// JSON to stdout unless log.format is "console". The minimum level can be
// changed at runtime through SetLevel.
func NewZapLogger(cfg *config.LogConfig) (*ZapLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	level := zap.NewAtomicLevelAt(parsed)

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	return &ZapLogger{
		zl:    zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		level: level,
	}, nil
}

// SetLevel changes the minimum enabled level at runtime. Unknown level strings
// are ignored. Component loggers share the level with their parent.
func (l *ZapLogger) SetLevel(levelStr string) {
	parsed, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		l.zl.Warn("ignoring unknown log level", zap.String("level", levelStr))
		return
	}
	l.level.SetLevel(parsed)
}

// Level returns the current minimum enabled level.
func (l *ZapLogger) Level() zapcore.Level {
	return l.level.Level()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Debug(msg, l.convertFields(ctx, fields)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Info(msg, l.convertFields(ctx, fields)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...logger.Field) {
	l.zl.Warn(msg, l.convertFields(ctx, fields)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, err error, fields ...logger.Field) {
	l.zl.Error(msg, append(l.convertFields(ctx, fields), zap.Error(err))...)
}

func (l *ZapLogger) Fatal(ctx context.Context, msg string, err error, fields ...logger.Field) {
	l.zl.Fatal(msg, append(l.convertFields(ctx, fields), zap.Error(err))...)
}

func (l *ZapLogger) WithComponent(component string) logger.Logger {
	return &ZapLogger{zl: l.zl.With(zap.String("component", component)), level: l.level}
}

// convertFields maps logger fields to zap fields, attaching the trace id
// from the active span when one exists.
func (l *ZapLogger) convertFields(ctx context.Context, fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	if span := trace.SpanContextFromContext(ctx); span.HasTraceID() {
		zapFields = append(zapFields, zap.String("trace_id", span.TraceID().String()))
	}
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}
