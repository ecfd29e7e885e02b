package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int
	}{
		{"numeric string", "5", 5},
		{"marker value", "ПТ", 1},
		{"garbage string", "abc", 1},
		{"json number", float64(7), 7},
		{"plain int", 7, 7},
		{"padded string", " 12 ", 12},
		{"empty string", "", 1},
		{"nil", nil, 1},
		{"unexpected type", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuantity(tt.input))
		})
	}
}
