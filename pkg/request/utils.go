package request

import (
	jsonlib "encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

// ToFormBody converts a JSON like map to form body map, any type is mapped to string.
func ToFormBody(in map[string]any) (out map[string]string) {
	out = make(map[string]string)
	for k, v := range in {
		ty := reflect.TypeOf(v)
		if ty != nil && ty.Kind() == reflect.Slice && ty.Elem().Kind() == reflect.String {
			for i, s := range v.([]string) {
				out[fmt.Sprintf("%s[%d]", k, i)] = s
			}
		} else if ty != nil && ty.Kind() == reflect.Map && ty.Key().Kind() == reflect.String && ty.Elem().Kind() == reflect.String {
			for i, s := range v.(map[string]string) {
				out[fmt.Sprintf("%s[%s]", k, i)] = s
			}
		} else {
			out[k] = castToString(v)
		}
	}
	return out
}

// EncodeForm encodes body parameters as "application/x-www-form-urlencoded", the order is kept.
// It is intended for Transport implementations.
func EncodeForm(params *orderedmap.OrderedMap) string {
	if params == nil {
		return ""
	}
	var out strings.Builder
	for i, k := range params.Keys() {
		if i > 0 {
			out.WriteByte('&')
		}
		v, _ := params.Get(k)
		out.WriteString(url.QueryEscape(k))
		out.WriteByte('=')
		out.WriteString(url.QueryEscape(castToString(v)))
	}
	return out.String()
}

// encodeQuery joins "key=value" pairs by "&", values are NOT escaped.
func encodeQuery(params *orderedmap.OrderedMap) string {
	if params == nil {
		return ""
	}
	var out strings.Builder
	for i, k := range params.Keys() {
		if i > 0 {
			out.WriteByte('&')
		}
		v, _ := params.Get(k)
		out.WriteString(k)
		out.WriteByte('=')
		out.WriteString(castToString(v))
	}
	return out.String()
}

func castToString(v any) string {
	out, err := castToStringE(v)
	if err != nil {
		panic(err)
	}
	return out
}

func castToStringE(v any) (string, error) {
	// Ordered map
	if orderedMap, ok := v.(*orderedmap.OrderedMap); ok {
		// Standard json encoding library is used.
		// JsonIter lib returns non-compact JSON,
		// if custom OrderedMap.MarshalJSON method is used.
		out, err := jsonlib.Marshal(orderedMap)
		if err != nil {
			return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
		}
		return string(out), nil
	}

	// Other types
	out, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
	}
	return out, nil
}

// checkParams returns *InvalidParamError for the first value not convertible to a string.
func checkParams(location string, params *orderedmap.OrderedMap) error {
	if params == nil {
		return nil
	}
	for _, k := range params.Keys() {
		v, _ := params.Get(k)
		if _, err := castToStringE(v); err != nil {
			return &InvalidParamError{Location: location, Param: k, err: err}
		}
	}
	return nil
}
