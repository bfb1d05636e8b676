package fiber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"vstring", VString("hello"), `"hello"`},
		{"vint", VInt(42), "42"},
		{"vfloat", VFloat(0.86), "0.86"},
		{"vfloat_integral", VFloat(1), "1.0"},
		{"vbool", VBool(true), "true"},
		{"go_string", "x", `"x"`},
		{"go_int", 7, "7"},
		{"go_float", 0.5, "0.5"},
		{"go_bool", false, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonicalObjectKeyOrder(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"b": VInt(2),
		"a": VInt(1),
		"c": VInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(got))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical(VString("<a> & </a>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a> & </a>"`, string(got))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "é" composed (U+00E9) and decomposed (e + U+0301) must serialize
	// identically.
	composed, err := MarshalCanonical(VString("é"))
	require.NoError(t, err)
	decomposed, err := MarshalCanonical(VString("é"))
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonicalRejections(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)

	nan := 0.0
	nan = nan / nan
	_, err = MarshalCanonical(nan)
	assert.Error(t, err)

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	in := map[string]any{
		"scores": []Value{VFloat(0.9), VFloat(0.85)},
		"label":  VString("quality"),
		"count":  VInt(2),
	}
	first, err := MarshalCanonical(in)
	require.NoError(t, err)
	for range 10 {
		again, err := MarshalCanonical(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
