package models

import "encoding/json"

// Nullable is a patch field for values that can be cleared. An absent key
// leaves Set false; an explicit null sets it with a nil Value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a patch field that sets v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a patch field that clears the stored value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// copyValue detaches the patch value from the caller.
func (n Nullable[T]) copyValue() *T {
	if n.Value == nil {
		return nil
	}
	v := *n.Value
	return &v
}
