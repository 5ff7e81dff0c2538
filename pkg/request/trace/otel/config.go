package otel

import (
	"strings"

	"github.com/umisama/go-regexpcache"
)

type config struct {
	redactedQueryParams  map[string]struct{}
	redactedQueryPattern []string
	redactedHeaders      map[string]struct{}
}

type Option func(*config)

// WithRedactedQueryParam masks values of the query and body parameters in span attributes.
func WithRedactedQueryParam(params ...string) Option {
	return func(c *config) {
		for _, p := range params {
			c.redactedQueryParams[strings.ToLower(p)] = struct{}{}
		}
	}
}

// WithRedactedQueryParamPattern masks values of the query and body parameters matching the regular expression.
func WithRedactedQueryParamPattern(patterns ...string) Option {
	return func(c *config) {
		for _, p := range patterns {
			regexpcache.MustCompile(p) // validate
			c.redactedQueryPattern = append(c.redactedQueryPattern, p)
		}
	}
}

// WithRedactedHeaders masks values of the headers in span attributes.
func WithRedactedHeaders(headers ...string) Option {
	return func(c *config) {
		for _, h := range headers {
			c.redactedHeaders[strings.ToLower(h)] = struct{}{}
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		redactedQueryParams: make(map[string]struct{}),
		// Same as in the otelhttptrace
		redactedHeaders: map[string]struct{}{
			"authorization":       {},
			"www-authenticate":    {},
			"proxy-authenticate":  {},
			"proxy-authorization": {},
			"cookie":              {},
			"set-cookie":          {},
		},
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func (c config) isRedactedParam(key string) bool {
	if _, found := c.redactedQueryParams[strings.ToLower(key)]; found {
		return true
	}
	for _, p := range c.redactedQueryPattern {
		if regexpcache.MustCompile(p).MatchString(key) {
			return true
		}
	}
	return false
}

func (c config) isRedactedHeader(key string) bool {
	_, found := c.redactedHeaders[strings.ToLower(key)]
	return found
}
