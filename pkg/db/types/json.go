package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores an arbitrary value as a JSON document. It scans from text or
// bytes so the same model works against sqlite TEXT and postgres JSONB.
type JSON[T any] struct {
	Val T
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{Val: v}
}

func (j *JSON[T]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		var zero T
		j.Val = zero
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("JSON: unsupported Scan type %T", src)
	}
	if err := json.Unmarshal(raw, &j.Val); err != nil {
		return fmt.Errorf("JSON: decode: %w", err)
	}
	return nil
}

// Value encodes as a string; postgres casts text literals to jsonb under the
// simple protocol while bytea literals would be rejected.
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Val)
	if err != nil {
		return nil, fmt.Errorf("JSON: encode: %w", err)
	}
	return string(b), nil
}
