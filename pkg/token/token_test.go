package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for _, length := range []int{16, 32, 64, 128} {
		got := Generate(length)
		assert.Len(t, got, length)
		for _, c := range got {
			assert.Contains(t, alphabet, string(c), "unexpected character %q", c)
		}
	}
}

func TestGenerateDefaultLength(t *testing.T) {
	assert.Len(t, Generate(0), DefaultLength)
	assert.Len(t, Generate(-5), DefaultLength)
}

func TestGenerateNotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Generate(DefaultLength)] = true
	}
	assert.Len(t, seen, 50, "expected 50 distinct tokens")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"too short", "abc", false},
		{"fifteen chars", strings.Repeat("A", 15), false},
		{"sixteen chars", strings.Repeat("A", 16), true},
		{"generated length", Generate(DefaultLength), true},
		{"max length", strings.Repeat("z", 128), true},
		{"over max length", strings.Repeat("A", 129), false},
		{"mixed alphanumeric", "Abc123XYZ456defg", true},
		{"contains dash", "abcdefgh-jklmnop", false},
		{"contains space", "abcdefgh jklmnop", false},
		{"contains unicode", "abcdefghjklmnoé1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.token))
		})
	}
}
