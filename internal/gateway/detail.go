package gateway

import (
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// DefaultDetailExpressions cover FastAPI-style error bodies:
// {"detail": "..."}, {"detail": [{"msg": "..."}]} and {"message": "..."}.
var DefaultDetailExpressions = []string{"detail", "detail[0].msg", "message"}

// DetailExtractor pulls a human-readable message out of an error response body.
// Expressions are tried in order; the first one yielding a non-empty string wins.
type DetailExtractor struct {
	exprs []string
}

// NewDetailExtractor compiles exprs. An empty list uses DefaultDetailExpressions.
func NewDetailExtractor(exprs []string) (*DetailExtractor, error) {
	if len(exprs) == 0 {
		exprs = DefaultDetailExpressions
	}
	d := &DetailExtractor{}
	for _, e := range exprs {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, err := jmespath.Compile(e); err != nil {
			return nil, fmt.Errorf("compile detail expression %q: %w", e, err)
		}
		d.exprs = append(d.exprs, e)
	}
	return d, nil
}

// Extract returns the first non-empty string match, or "".
func (d *DetailExtractor) Extract(data any) string {
	if d == nil || data == nil {
		return ""
	}
	for _, expr := range d.exprs {
		v, err := jmespath.Search(expr, data)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
