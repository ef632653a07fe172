package models

import (
	"bytes"
	"encoding/json"
)

// Optional tracks JSON field presence alongside the value, which a bare
// pointer cannot express without conflating "absent" and "null":
//   - field absent from JSON: Present() is false, defaults apply
//   - field present with any value, zero values included: Present() is true
//   - field present as JSON null: treated as absent
//
// This is what makes partial updates able to distinguish "leave the title
// alone" from "set the title to the empty string".
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a value as a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Present reports whether the field was supplied.
func (o Optional[T]) Present() bool { return o.present }

// Value returns the supplied value, or the zero value when absent.
func (o Optional[T]) Value() T { return o.value }

// Or returns the supplied value, or def when the field was absent.
func (o Optional[T]) Or(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field exists in the payload, so reaching this method at all means the
// field is present unless the client sent an explicit null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		var zero T
		o.value = zero
		o.present = false
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.present = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
