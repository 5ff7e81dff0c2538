package trace

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type logTrace struct {
	ClientTrace
	wr io.Writer
}

// LogTracer writes one line for each stage of a request to the writer.
func LogTracer(wr io.Writer) Factory {
	var idGenerator uint64
	return func(ctx context.Context, req Request) (context.Context, *ClientTrace) {
		requestID := atomic.AddUint64(&idGenerator, 1)

		var startTime time.Time
		var doneTime time.Time

		t := &logTrace{wr: wr}
		t.TransportStart = func() {
			startTime = time.Now()
			t.log(requestID, fmt.Sprintf(`START %s "%s"`, req.Method, req.Target))
		}
		t.TransportDone = func(body string, err error) {
			doneTime = time.Now()
			if err == nil {
				t.log(requestID, fmt.Sprintf(`DONE  %s "%s" | %d bytes | %s`, req.Method, req.Target, len(body), doneTime.Sub(startTime)))
			} else {
				t.log(requestID, fmt.Sprintf(`DONE  %s "%s" | %s | error=%s`, req.Method, req.Target, doneTime.Sub(startTime), err))
			}
		}
		t.RequestProcessed = func(result any, err error) {
			if doneTime.IsZero() {
				doneTime = time.Now()
			}
			var errorStr string
			if err != nil {
				errorStr = fmt.Sprintf(" | error=%s", err)
			}
			t.log(requestID, fmt.Sprintf(`BODY  %s "%s" | %s | %s%s`, req.Method, req.Target, ShapeOf(result), time.Since(doneTime), errorStr))
		}
		return ctx, &t.ClientTrace
	}
}

func (t *logTrace) log(requestID uint64, a ...any) {
	a = append([]any{fmt.Sprintf("API_REQUEST[%04d]", requestID)}, a...)
	_, _ = fmt.Fprintln(t.wr, a...)
}
