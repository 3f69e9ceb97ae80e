package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with timestamp", "https://youtu.be/abcDEFghiJK?t=5", "abcDEFghiJK"},
		{"watch url for same video", "https://www.youtube.com/watch?v=abcDEFghiJK", "abcDEFghiJK"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  dQw4w9WgXcQ \n", "dQw4w9WgXcQ"},
		{"unrecognized input is cut at ampersand", "abc&list=xyz", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVideoID_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "&foo=bar"} {
		_, err := ExtractVideoID(input)
		assert.ErrorIs(t, err, ErrEmptyVideoID, "input %q", input)
	}
}
