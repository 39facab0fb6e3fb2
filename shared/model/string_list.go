package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidStringList = errors.New("must be an array of strings")

// StringList is an ordered list of strings stored as JSON text in a single column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	encoded, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}

	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*l = StringList{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		*l = StringList{}

		return nil
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}

	if decoded == nil {
		decoded = []string{}
	}

	*l = decoded

	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]string(l)) //nolint:wrapcheck
}

// UnmarshalJSON accepts a JSON array of strings or null. Anything else is rejected.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = StringList{}

		return nil
	}

	var decoded []string
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return ErrInvalidStringList
	}

	*l = decoded

	return nil
}

// OrDefault returns l, or a copy of def when l is empty.
func (l StringList) OrDefault(def ...string) StringList {
	if len(l) > 0 {
		return l
	}

	out := make(StringList, len(def))
	copy(out, def)

	return out
}
