package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"value", "value", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single edits
		{"vars", "var", 1},
		{"sufix", "suffix", 1},
		{"prefix", "prefex", 1},

		// Multiple edits
		{"kitten", "sitting", 3},
		{"params", "parms", 1},

		// Runes, not bytes
		{"café", "cafe", 1},
		{"naïve", "naive", 1},

		// Case-sensitive
		{"Value", "value", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			if reverse := Levenshtein(tt.b, tt.a); reverse != result {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, reverse = %d",
					tt.a, tt.b, result, reverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"applyTo", "apply_to", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"total", "totl", 1.0 - 1.0/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein("valueFunctionName", "valueFuncName")
	}
}
