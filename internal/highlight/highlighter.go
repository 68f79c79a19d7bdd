// Package highlight marks query-term occurrences in result snippets.
//
// Matching is whole-word and case-insensitive: a term highlights a word in
// the text only when the entire word equals the term, so "cat" never marks
// "category". Terms come from the literal query plus the backend's matched
// words, which may be stemmed or lemmatized forms absent from the query.
package highlight

import (
	"strings"
	"unicode"
)

// Segment is a contiguous piece of the input text. Concatenating the Text of
// all segments in order reproduces the input exactly.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Highlight splits text into match and non-match segments against the query
// terms unioned with matchedWords. A blank query with no matched words
// returns the whole text as a single non-match segment.
func Highlight(text, query string, matchedWords []string) []Segment {
	terms := termSet(query, matchedWords)
	if len(terms) == 0 {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	flush := func(start, end int, match bool) {
		if start >= end {
			return
		}
		segments = append(segments, Segment{Text: text[start:end], Match: match})
	}

	runStart := 0
	inWord := false
	for i, r := range text {
		word := isWordRune(r)
		if word == inWord {
			continue
		}
		if inWord {
			// Word run ended: it is a match iff the whole word is a term.
			_, ok := terms[strings.ToLower(text[runStart:i])]
			flush(runStart, i, ok)
		} else {
			flush(runStart, i, false)
		}
		runStart = i
		inWord = word
	}
	if inWord {
		_, ok := terms[strings.ToLower(text[runStart:])]
		flush(runStart, len(text), ok)
	} else {
		flush(runStart, len(text), false)
	}

	if segments == nil {
		return []Segment{{Text: text}}
	}
	return segments
}

// termSet lowercases and deduplicates the query tokens and matched words.
// Query tokens are stripped to their word characters so punctuation attached
// to a term ("tf-idf," → "tfidf") does not defeat matching; tokens that strip
// to nothing are discarded.
func termSet(query string, matchedWords []string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, token := range strings.Fields(query) {
		stripped := stripToken(token)
		if stripped != "" {
			terms[strings.ToLower(stripped)] = struct{}{}
		}
	}
	for _, w := range matchedWords {
		w = strings.TrimSpace(strings.ToLower(w))
		if w != "" {
			terms[w] = struct{}{}
		}
	}
	return terms
}

// stripToken removes every rune that is not a letter, digit, or underscore,
// preserving accented letters.
func stripToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
