package utilities

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present in the payload and whether it
// was an explicit null, which a pointer cannot tell apart from an absent field.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}

	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports a field that was supplied with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
