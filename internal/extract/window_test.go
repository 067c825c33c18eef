package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindow(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		vin    string
		radius int
		want   string
	}{
		{"case insensitive", "abcXYZdef", "xyz", 2, "bcXYZde"},
		{"clamped at edges", "XYZ", "XYZ", 10, "XYZ"},
		{"multibyte runes", "ééXYZéé", "XYZ", 1, "éXYZé"},
		{"missing vin", "abcdef", "XYZ", 1, "abcdef"},
		{"empty vin", "abcdef", "", 1, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contextWindow(tt.text, tt.vin, tt.radius))
		})
	}
}

func TestPlausiblePositional(t *testing.T) {
	for _, c := range []byte("0123456789ABCDEFGHJKLMNPRSTVWXY") {
		assert.True(t, plausiblePositional(c), string(c))
	}
	for _, c := range []byte("IOQUZ-a") {
		assert.False(t, plausiblePositional(c), string(c))
	}
}
