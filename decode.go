package threads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNullObject = errors.New("expected object, got null")

// field binds one JSON object key to its destination. Keys that are not
// optional must be present and non-null.
type field struct {
	name     string
	dst      any
	optional bool
}

func required(name string, dst any) field { return field{name: name, dst: dst} }

func optional(name string, dst any) field { return field{name: name, dst: dst, optional: true} }

// decodeObject decodes data as a JSON object into fields. Failures inside a
// nested value are reported with the dotted path of keys leading to them.
func decodeObject(data []byte, fields ...field) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errNullObject
	}

	for _, f := range fields {
		value, ok := raw[f.name]
		if !ok || isNull(value) {
			if f.optional {
				continue
			}
			return &MissingFieldError{Field: f.name}
		}

		if err := json.Unmarshal(value, f.dst); err != nil {
			var missing *MissingFieldError
			if errors.As(err, &missing) {
				return &MissingFieldError{Field: f.name + "." + missing.Field}
			}
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
