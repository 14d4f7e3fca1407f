package trends

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountMentions(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		expected map[string]int
	}{
		{
			name:     "Absent keyword counts zero",
			text:     "nothing to see here",
			keywords: []string{"python"},
			expected: map[string]int{"python": 0},
		},
		{
			name:     "Case insensitive matching",
			text:     "I love python and AWS",
			keywords: []string{"python", "aws"},
			expected: map[string]int{"python": 1, "aws": 1},
		},
		{
			name:     "Empty text yields zero for every keyword",
			text:     "",
			keywords: []string{"python", "aws"},
			expected: map[string]int{"python": 0, "aws": 0},
		},
		{
			name:     "Duplicate keywords count once",
			text:     "python is great",
			keywords: []string{"python", "Python", " python "},
			expected: map[string]int{"python": 1},
		},
		{
			name:     "Whole word only, no substring hits",
			text:     "this design has flaws but no cloud provider",
			keywords: []string{"aws"},
			expected: map[string]int{"aws": 0},
		},
		{
			name:     "Punctuation is a word boundary",
			text:     "Migrating to AWS. AWS, again? (aws)",
			keywords: []string{"aws"},
			expected: map[string]int{"aws": 3},
		},
		{
			name:     "Multiple non-overlapping occurrences",
			text:     "python python python",
			keywords: []string{"python"},
			expected: map[string]int{"python": 3},
		},
		{
			name:     "Multi-word keyword matches as a phrase",
			text:     "We run Azure Kubernetes Service in prod; azure kubernetes service is fine",
			keywords: []string{"azure kubernetes service"},
			expected: map[string]int{"azure kubernetes service": 2},
		},
		{
			name:     "Digits block a boundary",
			text:     "ec2aws and aws2 do not count, aws does",
			keywords: []string{"aws"},
			expected: map[string]int{"aws": 1},
		},
		{
			name:     "Keyword at start and end of text",
			text:     "aws beats everything except aws",
			keywords: []string{"aws"},
			expected: map[string]int{"aws": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountMentions(tt.text, tt.keywords))
		})
	}
}

func TestCountMentions_CaseInsensitiveProperty(t *testing.T) {
	text := "Terraform manages AWS and azure; terraform is popular"
	keywords := []string{"terraform", "aws", "azure"}

	assert.Equal(t, CountMentions(text, keywords), CountMentions(strings.ToUpper(text), keywords))
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" Python ", "AWS", "aws", "", "  ", "Python"})
	assert.Equal(t, []string{"python", "aws"}, got)
}

func TestNormalizeKeywords_PreservesFirstSeenOrder(t *testing.T) {
	got := NormalizeKeywords([]string{"zeta", "alpha", "Zeta", "mid"})
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, got)
}
