package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"shorter than max", "abc", 10, "abc"},
		{"exactly max", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 5, "abcde..."},
		{"zero max returns unchanged", "abcdefgh", 0, "abcdefgh"},
		{"negative max returns unchanged", "abc", -1, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"simple title", "Information Retrieval", "information_retrieval"},
		{"punctuation collapses", "TF-IDF vs. BM25!", "tf_idf_vs_bm25"},
		{"accents kept", "Recuperação de Informação", "recuperação_de_informação"},
		{"leading and trailing junk", "  (draft) ", "draft"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.s); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}
