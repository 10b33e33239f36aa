package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#ff0000", true},
		{"#FFF", true},
		{"#12ab9C", true},
		{"ff0000", false},
		{"#ff00", false},
		{"#gg0000", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isHexColor(tt.in), tt.in)
	}
}

func TestCategorySwatchBlankForMissingColor(t *testing.T) {
	bad := "red"
	assert.Equal(t, "  ", CategorySwatch(nil))
	assert.Equal(t, "  ", CategorySwatch(&bad))
}
