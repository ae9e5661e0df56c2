// Package jsonview turns arbitrary JSON values into a nested list tree for display.
package jsonview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind distinguishes the three node shapes.
type Kind string

const (
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindLeaf   Kind = "leaf"
)

// Node is one list entry. Key is set for object members. Leaves carry Value;
// objects and arrays carry Children.
type Node struct {
	Key      string
	Kind     Kind
	Value    string
	Children []*Node

	keyed bool
}

// IsLeaf reports whether n is a primitive.
func (n *Node) IsLeaf() bool { return n.Kind == KindLeaf }

// HasKey reports whether n is an object member.
func (n *Node) HasKey() bool { return n.Key != "" || n.keyed }

// Render converts a decoded JSON value (as produced by encoding/json into any)
// into a Node tree. Object keys are sorted so output is stable.
func Render(v any) *Node {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &Node{Kind: KindObject, Children: make([]*Node, 0, len(keys))}
		for _, k := range keys {
			child := Render(t[k])
			child.Key = k
			child.keyed = true
			n.Children = append(n.Children, child)
		}
		return n
	case []any:
		n := &Node{Kind: KindArray, Children: make([]*Node, 0, len(t))}
		for _, item := range t {
			n.Children = append(n.Children, Render(item))
		}
		return n
	default:
		return &Node{Kind: KindLeaf, Value: Stringify(v)}
	}
}

// Stringify coerces a JSON primitive to its display string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Decode parses raw JSON preserving number literals.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// NotAvailable is displayed in place of an absent field.
const NotAvailable = "N/A"

// Field is a JSON-encoded string field decoded for display.
type Field struct {
	// Present is false when the field was null or empty (display "N/A").
	Present bool
	// Parsed is true when Raw was valid JSON and Tree holds it.
	Parsed bool
	// Raw is the original string, displayed verbatim when Parsed is false.
	Raw  string
	Tree *Node
	// Err is the decode failure, if any. It is for logging, not display.
	Err error
}

// DecodeField decodes a JSON-encoded string. Invalid JSON falls back to the raw string.
func DecodeField(raw *string) Field {
	if raw == nil || *raw == "" {
		return Field{}
	}
	f := Field{Present: true, Raw: *raw}
	v, err := Decode([]byte(*raw))
	if err != nil {
		f.Err = err
		return f
	}
	if v == nil || isEmptyString(v) {
		// Decodes to a value the viewer treats as absent.
		return Field{}
	}
	f.Parsed = true
	f.Tree = Render(v)
	return f
}

func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}
