package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"movie", CategoryMovie},
		{"Movies", CategoryMovie},
		{"series", CategorySeries},
		{"tv", CategorySeries},
		{" TV ", CategorySeries},
		{"shows", CategorySeries},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "music", "movie,tv"} {
		_, err := ParseCategory(input)
		assert.ErrorIs(t, err, ErrUnknownCategory, input)
	}
}

func TestTMDBPath(t *testing.T) {
	assert.Equal(t, "movie", CategoryMovie.TMDBPath())
	assert.Equal(t, "tv", CategorySeries.TMDBPath())
}
