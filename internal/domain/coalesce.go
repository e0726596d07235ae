package domain

import (
	"bytes"
	"encoding/json"
)

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Nullable is a patch field that distinguishes "absent" from "explicit null".
// Set is true whenever the key was present in the JSON body; Valid is false
// when its value was null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// NewNullable returns a set, non-null patch value.
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a set, null patch value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// applyPtr overwrites *dst when n was present in the patch.
func applyPtr[T any](dst **T, n Nullable[T]) {
	if !n.Set {
		return
	}
	if !n.Valid {
		*dst = nil
		return
	}
	v := n.Value
	*dst = &v
}

func applyVal[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
