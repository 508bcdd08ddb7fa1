package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"blue", "indigo"},
		{"Blue", "indigo"},
		{"  pink ", "rose"},
		{"black", "black color"},
		{"gray", "gray-50%"},
		{"grey", "gray-50%"},
		{"light grey", "grey-25%"},
		{"red", "red"},
		{"chartreuse", "chartreuse"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColor(tt.in))
		})
	}
}

func TestResolveShape(t *testing.T) {
	tests := []struct {
		in     string
		target string
		known  bool
	}{
		{"rectangle", "rectangle", true},
		{"circle", "oval", true},
		{"Circle", "oval", true},
		{"oval", "oval", true},
		{"star", "five point star", true},
		{"dodecahedron", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			target, ok := ResolveShape(tt.in)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestKnownShapesAllResolve(t *testing.T) {
	for _, shape := range KnownShapes() {
		_, ok := ResolveShape(shape)
		assert.True(t, ok, shape)
	}
}
