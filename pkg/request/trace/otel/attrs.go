package otel

import (
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel/attribute"

	"github.com/restmash/go-client/pkg/request"
	"github.com/restmash/go-client/pkg/request/trace"
)

const (
	maskedAttrValue = "****"
)

type attributes struct {
	// definition attributes for span and metrics
	definition []attribute.KeyValue
	// definitionExtra attributes for span only
	definitionExtra []attribute.KeyValue
}

func newAttributes(cfg config, req trace.Request) *attributes {
	out := &attributes{}

	// Definition base, the query string is not included in metric dimensions
	out.definition = []attribute.KeyValue{
		attribute.String("definition.method", req.Method),
		attribute.String("definition.path", req.Path),
	}

	// Definition params
	out.definitionExtra = append(out.definitionExtra, attribute.String("definition.uri", redactedURI(cfg, req)))
	var headerAttrs []attribute.KeyValue
	for k, v := range req.Headers {
		if cfg.isRedactedHeader(k) {
			v = maskedAttrValue
		}
		headerAttrs = append(headerAttrs, attribute.String("definition.header."+k, v))
	}
	sort.SliceStable(headerAttrs, func(i, j int) bool {
		return headerAttrs[i].Key < headerAttrs[j].Key
	})
	out.definitionExtra = append(out.definitionExtra, headerAttrs...)
	out.definitionExtra = append(out.definitionExtra, paramsAttrs(cfg, "definition.params.query.", req.Query)...)
	if req.Method == "POST" {
		out.definitionExtra = append(out.definitionExtra, paramsAttrs(cfg, "definition.params.body.", req.Body)...)
	}

	return out
}

func paramsAttrs(cfg config, prefix string, params *orderedmap.OrderedMap) (out []attribute.KeyValue) {
	if params == nil {
		return nil
	}
	for _, k := range params.Keys() {
		v, _ := params.Get(k)
		value := cast.ToString(v)
		if cfg.isRedactedParam(k) {
			value = maskedAttrValue
		}
		out = append(out, attribute.String(prefix+k, value))
	}
	return out
}

func redactedURI(cfg config, req trace.Request) string {
	if req.Query == nil {
		return req.Path
	}
	var query strings.Builder
	for i, k := range req.Query.Keys() {
		if i > 0 {
			query.WriteString("&")
		}
		v, _ := req.Query.Get(k)
		value := cast.ToString(v)
		if cfg.isRedactedParam(k) {
			value = maskedAttrValue
		}
		query.WriteString(k + "=" + value)
	}
	return request.JoinQuery(req.Path, query.String())
}
