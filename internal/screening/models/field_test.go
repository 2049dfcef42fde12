package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestField_UnmarshalNormalizesSentinels verifies that null and the literal
// "No" both land as unknown, while a real value (including "") stays known.
func TestField_UnmarshalNormalizesSentinels(t *testing.T) {
	cases := []struct {
		name  string
		json  string
		known bool
		value string
	}{
		{name: "null", json: `null`, known: false},
		{name: "no sentinel", json: `"No"`, known: false},
		{name: "value", json: `"Dana Whitfield"`, known: true, value: "Dana Whitfield"},
		{name: "empty string stays known", json: `""`, known: true, value: ""},
		{name: "lowercase no is a value", json: `"no"`, known: true, value: "no"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f Field
			require.NoError(t, json.Unmarshal([]byte(tc.json), &f))
			assert.Equal(t, tc.known, f.Known)
			assert.Equal(t, tc.value, f.Value)
		})
	}
}

func TestField_MarshalUnknownAsNull(t *testing.T) {
	out, err := json.Marshal(Field{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(KnownField("No"))
	require.NoError(t, err)
	assert.Equal(t, `"No"`, string(out), "a genuine value of No round-trips as a string")
}

func TestField_Or(t *testing.T) {
	assert.Equal(t, "fallback", Field{}.Or("fallback"))
	assert.Equal(t, "", KnownField("").Or("fallback"))
	assert.Equal(t, "x", KnownField("x").Or("fallback"))
}

// TestCount_UnmarshalAcceptsUpstreamShapes verifies counts decode from
// numbers, numeric strings, null, and the "No" sentinel. Known zero stays
// distinct from unknown.
func TestCount_UnmarshalAcceptsUpstreamShapes(t *testing.T) {
	cases := []struct {
		name  string
		json  string
		known bool
		value int
	}{
		{name: "number", json: `3`, known: true, value: 3},
		{name: "numeric string", json: `"7"`, known: true, value: 7},
		{name: "zero", json: `0`, known: true, value: 0},
		{name: "null", json: `null`, known: false},
		{name: "no sentinel", json: `"No"`, known: false},
		{name: "empty string", json: `""`, known: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tc.json), &c))
			assert.Equal(t, tc.known, c.Known)
			assert.Equal(t, tc.value, c.Value)
		})
	}
}

func TestCount_UnmarshalRejectsGarbage(t *testing.T) {
	var c Count
	assert.Error(t, json.Unmarshal([]byte(`"several"`), &c))
}
