package model

import (
	"bytes"
	"errors"
)

var ErrInvalidFlag = errors.New("must be a boolean or 0/1")

// Flag is a boolean request field that also accepts the 0/1 integers sent by
// form switches.
type Flag bool

// UnmarshalJSON accepts true, false, 0, 1 and their quoted forms.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(bytes.TrimSpace(data), `"`)) {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return ErrInvalidFlag
	}

	return nil
}

// FlagOr returns the value of f, or def when the field was absent.
func FlagOr(f *Flag, def bool) bool {
	if f == nil {
		return def
	}

	return bool(*f)
}
