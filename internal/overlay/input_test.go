package overlay

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyIndex(t *testing.T) {
	tests := []struct {
		name string
		key  glfw.Key
		want int
		ok   bool
	}{
		{"unknown", glfw.KeyUnknown, 0, false},
		{"space", glfw.KeySpace, int(glfw.KeySpace), true},
		{"a", glfw.KeyA, int(glfw.KeyA), true},
		{"escape", glfw.KeyEscape, int(glfw.KeyEscape), true},
		{"last", glfw.KeyLast, int(glfw.KeyLast), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyIndex(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
