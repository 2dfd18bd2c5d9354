package mylog

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

var baseLogger = func() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		log.Printf("error building zap logger, falling back to no-op: %s", err)
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}()

type standardLogger struct {
	componentName string
	sugar         *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		sugar:         baseLogger.With("component", componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	kv := []any{}
	if traceLabel != "" {
		kv = append(kv, "productId", traceLabel)
	}

	switch severity {
	case SeverityDebug:
		l.sugar.Debugw(msg, kv...)
	case SeverityWarn:
		l.sugar.Warnw(msg, kv...)
	case SeverityError:
		l.sugar.Errorw(msg, kv...)
	default:
		l.sugar.Infow(msg, kv...)
	}
}
