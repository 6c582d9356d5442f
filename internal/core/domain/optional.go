package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that can be absent, explicitly null or a value.
// Set is false when the field was not sent; Value is nil for an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only called for keys present in the body, so reaching it
// at all marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Get returns the value or nil, for callers that only care whether it is null.
func (o Optional[T]) Get() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}
