package validator

import (
	"encoding/json"
	"sort"
)

// Kind is the primitive type a field value must decode to.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindStringSlice
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "a string"
	case KindInteger:
		return "an integer"
	case KindStringSlice:
		return "an array of strings"
	default:
		return "unknown"
	}
}

// Field declares one permitted field of a Shape.
type Field struct {
	Kind     Kind
	Required bool
}

// Shape is the declared set of permitted fields for an operation, keyed by JSON field name.
type Shape map[string]Field

// Partial returns a copy of the shape with every field made optional. We use it to derive the
// update shape from the create shape so that the two can never drift apart.
func (s Shape) Partial() Shape {
	partial := make(Shape, len(s))
	for name, field := range s {
		field.Required = false
		partial[name] = field
	}
	return partial
}

// ValidateShape checks a decoded JSON object against the shape and records one error per offending
// field on v. The payload is expected to have been decoded with json.Decoder.UseNumber(), so that
// numbers arrive as json.Number and integers can be told apart from floats.
//
// The function never modifies the payload.
func ValidateShape(v *Validator, shape Shape, payload map[string]any) {
	// Walk the payload keys in sorted order so that the error reported for each key doesn't depend on
	// map iteration order.
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := shape[key]
		if !ok {
			v.AddError(key, "unknown field")
			continue
		}
		v.Check(matchesKind(payload[key], field.Kind), key, "must be "+field.Kind.String())
	}

	for name, field := range shape {
		if !field.Required {
			continue
		}
		_, present := payload[name]
		v.Check(present, name, "must be provided")
	}
}

func matchesKind(value any, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindInteger:
		switch n := value.(type) {
		case json.Number:
			_, err := n.Int64()
			return err == nil
		case float64:
			// Only reachable when the caller decoded without UseNumber().
			return n == float64(int64(n))
		default:
			return false
		}
	case KindStringSlice:
		items, ok := value.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
