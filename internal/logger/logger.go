package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

func Init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l
}

func fieldList(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, fieldList(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, fieldList(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, fieldList(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, fieldList(fields)...)
}
