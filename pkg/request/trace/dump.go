package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

const dumpTraceMaxLength = 2000

type dumpTrace struct {
	ClientTrace
	wr io.Writer
}

// DumpTracer dumps request definition and response body to a writer.
// Output may contain unmasked tokens, do not use it in production!
func DumpTracer(wr io.Writer) Factory {
	return func(ctx context.Context, req Request) (context.Context, *ClientTrace) {
		var startTime, doneTime time.Time
		var responseErr error

		t := &dumpTrace{wr: wr}
		t.TransportStart = func() {
			startTime = time.Now()

			// Dump request
			t.log()
			t.log(">>>>>> API DUMP")
			t.log(req.Method, req.Target)
			for _, k := range sortedKeys(req.Headers) {
				t.log(k + ": " + req.Headers[k])
			}
			if req.Method == "POST" && req.Body != nil && len(req.Body.Keys()) > 0 {
				t.log()
				t.dump(dumpParams(req.Body))
			}
		}
		t.TransportDone = func(body string, err error) {
			doneTime = time.Now()
			responseErr = err

			// Dump response
			t.log("------")
			if err != nil {
				t.log("ERROR: ", err)
			} else {
				t.dump(body)
			}
			t.log("<<<<<< API DUMP END")
		}
		t.RequestProcessed = func(result any, err error) {
			if responseErr == nil {
				responseErr = err
			}
			t.log()
			t.log(">>>>>> API REQUEST PROCESSED", "| ", req.Method, req.Target, "|", ShapeOf(result), "| ERROR:", responseErr, "| RESPONSE AT:", doneTime.Sub(startTime), "| DONE AT:", time.Since(startTime))
		}
		return ctx, &t.ClientTrace
	}
}

func (t *dumpTrace) dump(body string) {
	body = strings.TrimSpace(body)
	if len(body) > dumpTraceMaxLength && os.Getenv("HTTP_DUMP_TRACE_FULL") != "true" { //nolint:forbidigo
		t.log(body[:dumpTraceMaxLength])
		t.log("... (set env HTTP_DUMP_TRACE_FULL=true to see full output)")
	} else {
		t.log(body)
	}
}

func (t *dumpTrace) log(a ...any) {
	_, _ = fmt.Fprintln(t.wr, a...)
}

func dumpParams(params *orderedmap.OrderedMap) string {
	var out strings.Builder
	for i, k := range params.Keys() {
		if i > 0 {
			out.WriteString("&")
		}
		v, _ := params.Get(k)
		out.WriteString(k + "=" + cast.ToString(v))
	}
	return out.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
