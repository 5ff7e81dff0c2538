package request

import (
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Options of a request. The zero value is an empty configuration.
type Options struct {
	// Query parameters, used only by GET. Values are scalars, the order is kept.
	Query *orderedmap.OrderedMap
	// Body parameters, used only by POST as a form payload. Values are scalars, the order is kept.
	Body *orderedmap.OrderedMap
	// Headers are passed to the transport verbatim.
	Headers map[string]string
}

// Params creates ordered parameters from key-value pairs, for example Params("since_id", 1234, "count", 20).
func Params(kv ...any) *orderedmap.OrderedMap {
	if len(kv)%2 != 0 {
		panic(fmt.Errorf("params must be defined by key-value pairs, got %d values", len(kv)))
	}
	out := orderedmap.New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Errorf("param key must be a string, got %T", kv[i]))
		}
		out.Set(key, kv[i+1])
	}
	return out
}

func mergeOptions(all ...Options) (out Options) {
	for _, o := range all {
		out.Query = mergeParams(out.Query, o.Query)
		out.Body = mergeParams(out.Body, o.Body)
		out.Headers = mergeHeaders(out.Headers, o.Headers)
	}
	return out
}

// mergeParams returns a new map, nil if both inputs are nil.
func mergeParams(base, in *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	if base == nil && in == nil {
		return nil
	}
	out := orderedmap.New()
	for _, params := range []*orderedmap.OrderedMap{base, in} {
		if params == nil {
			continue
		}
		for _, k := range params.Keys() {
			v, _ := params.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

// mergeHeaders returns a new map, nil if both inputs are nil.
func mergeHeaders(base, in map[string]string) map[string]string {
	if base == nil && in == nil {
		return nil
	}
	out := make(map[string]string, len(base)+len(in))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range in {
		out[k] = v
	}
	return out
}
