package model_test

import (
	"encoding/json"
	"testing"

	"tourbook/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_RoundTrip(t *testing.T) {
	original := model.StringList{"Dune bashing", "Camel ride", "Dune bashing", "BBQ dinner"}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded model.StringList
	require.NoError(t, decoded.Scan([]byte(value.(string))))

	assert.Equal(t, original, decoded)
}

func TestStringList_Value(t *testing.T) {
	var empty model.StringList

	value, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	value, err = model.StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, value)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    model.StringList
		wantErr bool
	}{
		{name: "nil", input: nil, want: model.StringList{}},
		{name: "empty bytes", input: []byte(""), want: model.StringList{}},
		{name: "string", input: `["09:00","14:00"]`, want: model.StringList{"09:00", "14:00"}},
		{name: "json null", input: "null", want: model.StringList{}},
		{name: "malformed", input: `["a",`, wantErr: true},
		{name: "wrong element type", input: `[1,2]`, wantErr: true},
		{name: "unsupported type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.StringList

			err := got.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Highlights model.StringList `json:"highlights"`
	}

	tests := []struct {
		name    string
		body    string
		want    model.StringList
		wantErr bool
	}{
		{name: "array", body: `{"highlights":["a","b"]}`, want: model.StringList{"a", "b"}},
		{name: "null", body: `{"highlights":null}`, want: model.StringList{}},
		{name: "missing", body: `{}`, want: nil},
		{name: "string", body: `{"highlights":"a, b"}`, wantErr: true},
		{name: "numbers", body: `{"highlights":[1,2]}`, wantErr: true},
		{name: "object", body: `{"highlights":{"a":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload

			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Highlights)
		})
	}
}

func TestStringList_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(struct {
		List model.StringList `json:"list"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"list":[]}`, string(encoded))
}

func TestStringList_OrDefault(t *testing.T) {
	assert.Equal(t, model.StringList{"English"}, model.StringList(nil).OrDefault("English"))
	assert.Equal(t, model.StringList{"Arabic"}, model.StringList{"Arabic"}.OrDefault("English"))
}
