package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Clarity", "clarity"},
		{"  Use of Evidence! ", "useofevidence"},
		{"Criterion 1: Clarity", "criterion1clarity"},
		{"grammar_and-spelling", "grammarandspelling"},
		{"Élan", "lan"},
		{"???", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	inputs := []string{"", "Clarity", "Criterion 1: Clarity", "ÀÉÎ ok 42", "K elvin", "tab\tsep"}
	for _, in := range inputs {
		once := NormalizeKey(in)
		assert.Equal(t, once, NormalizeKey(once), "input %q", in)
	}
}
