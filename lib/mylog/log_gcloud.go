package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/MarcGrol/productcomposite/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGloudLogger
		// Cloud Logging parses a line as JSON only without the default timestamp prefix.
		log.SetFlags(0)
	}
}

type structuredLogger struct {
	componentName string
}

func newGloudLogger(componentName string) Logger {
	return structuredLogger{
		componentName: componentName,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	log.Println(newEntry(ctx, l.componentName, traceLabel, severity, fmt.Sprintf(format, a...)).String())
}

func newEntry(ctx context.Context, component string, productID string, severity Severity, message string) entry {
	e := entry{
		Component: component,
		Trace:     mycontext.TraceFromContext(ctx),
		Severity:  string(severity),
		Message:   component + ":" + message,
	}
	if productID != "" {
		e.Labels = map[string]string{"productId": productID}
	}
	if spanContext := trace.SpanContextFromContext(ctx); spanContext.IsValid() {
		e.SpanID = spanContext.SpanID().String()
		e.Sampled = spanContext.IsSampled()
	}
	return e
}

type entry struct {
	Component string            `json:"component,omitempty"`
	Labels    map[string]string `json:"logging.googleapis.com/labels,omitempty"`
	Trace     string            `json:"logging.googleapis.com/trace,omitempty"`
	SpanID    string            `json:"logging.googleapis.com/spanId,omitempty"`
	Sampled   bool              `json:"logging.googleapis.com/trace_sampled,omitempty"`
	Severity  string            `json:"severity,omitempty"`
	Message   string            `json:"message"`
}

func (e entry) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		log.Printf("error marshalling log record: %v", err)
	}
	return string(out)
}
