// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sync"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/x/profiler"
	"go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values of the trace setting.
const (
	traceNone          = "none"
	traceOpenTelemetry = "opentelemetry"
	traceOpenCensus    = "opencensus"
	tracePprof         = "pprof"
)

// newProfiler returns the profiler selected by s.Trace, or nil when tracing
// is disabled.  Spans are written to w, one line per span.  The returned
// function flushes and stops tracing.
func newProfiler(rt *lisp.Runtime, s settings, w io.Writer) (lisp.Profiler, func(), error) {
	ctx := context.Background()
	switch s.Trace {
	case "", traceNone:
		return nil, func() {}, nil
	case traceOpenTelemetry:
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(&spanLineExporter{w: w}),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		p := profiler.NewOpenTelemetryAnnotator(rt, ctx)
		return p, func() {
			_ = p.Complete()
			_ = tp.Shutdown(ctx)
		}, nil
	case traceOpenCensus:
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
		exporter := &spanDataLineExporter{w: w}
		trace.RegisterExporter(exporter)
		p := profiler.NewOpenCensusAnnotator(rt, ctx)
		return p, func() {
			_ = p.Complete()
			trace.UnregisterExporter(exporter)
		}, nil
	case tracePprof:
		f, err := os.Create(s.CPUProfile)
		if err != nil {
			return nil, nil, err
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			f.Close() //nolint:errcheck,gosec // already failing
			return nil, nil, err
		}
		p := profiler.NewPprofAnnotator(rt, ctx)
		return p, func() {
			_ = p.Complete()
			pprof.StopCPUProfile()
			f.Close() //nolint:errcheck,gosec // best-effort
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown trace mode %q (expected %s, %s, %s or %s)",
			s.Trace, traceNone, traceOpenTelemetry, traceOpenCensus, tracePprof)
	}
}

// spanLineExporter is an OpenTelemetry SpanExporter which writes a line of
// text for each span.
type spanLineExporter struct {
	mut sync.Mutex
	w   io.Writer
}

var _ sdktrace.SpanExporter = &spanLineExporter{}

func (e *spanLineExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mut.Lock()
	defer e.mut.Unlock()
	for _, span := range spans {
		_, err := fmt.Fprintf(e.w, "span %s id=%s parent=%s duration=%s\n",
			span.Name(),
			span.SpanContext().SpanID(),
			span.Parent().SpanID(),
			span.EndTime().Sub(span.StartTime()))
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *spanLineExporter) Shutdown(ctx context.Context) error {
	return nil
}

// spanDataLineExporter is an OpenCensus exporter which writes a line of text
// for each span.
type spanDataLineExporter struct {
	mut sync.Mutex
	w   io.Writer
}

func (e *spanDataLineExporter) ExportSpan(sd *trace.SpanData) {
	e.mut.Lock()
	defer e.mut.Unlock()
	_, _ = fmt.Fprintf(e.w, "span %s id=%s parent=%s duration=%s\n",
		sd.Name, sd.SpanID, sd.ParentSpanID, sd.EndTime.Sub(sd.StartTime))
}
