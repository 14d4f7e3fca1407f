package keywords

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single row",
			input:    "python,aws,kubernetes",
			expected: []string{"python", "aws", "kubernetes"},
		},
		{
			name:     "Multiple rows",
			input:    "python,aws\nkubernetes,terraform",
			expected: []string{"python", "aws", "kubernetes", "terraform"},
		},
		{
			name:     "Lowercased and trimmed",
			input:    " Python , AWS ",
			expected: []string{"python", "aws"},
		},
		{
			name:     "Duplicates dropped, first-seen order kept",
			input:    "aws,python,AWS,python",
			expected: []string{"aws", "python"},
		},
		{
			name:     "Empty fields skipped",
			input:    "python,,aws,   ",
			expected: []string{"python", "aws"},
		},
		{
			name:     "Ragged rows are fine",
			input:    "a,b,c\nd\ne,f",
			expected: []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFileStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.csv")
	require.NoError(t, os.WriteFile(path, []byte("Python,AWS\nsnowflake"), 0o644))

	store := NewFileStore(path)
	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "aws", "snowflake"}, got)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := store.Load(context.Background())

	assert.Error(t, err)
}

func TestStaticStore_Load(t *testing.T) {
	store := NewStaticStore([]string{"python", "aws"})

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"python", "aws"}, got)
}
