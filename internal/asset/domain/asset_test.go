package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "heif rewritten", input: "image/heif", expected: "image/heic"},
		{name: "heif uppercase rewritten", input: "IMAGE/HEIF", expected: "image/heic"},
		{name: "heif with parameters rewritten", input: "image/heif; charset=binary", expected: "image/heic"},
		{name: "heic untouched", input: "image/heic", expected: "image/heic"},
		{name: "heif sequence untouched", input: "image/heif-sequence", expected: "image/heif-sequence"},
		{name: "video untouched", input: "video/mp4", expected: "video/mp4"},
		{name: "parameters preserved", input: "text/plain; charset=utf-8", expected: "text/plain; charset=utf-8"},
		{name: "empty defaults", input: "", expected: DefaultContentType},
		{name: "blank defaults", input: "   ", expected: DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeContentType(tt.input))
		})
	}
}
