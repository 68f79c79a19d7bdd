// Package models defines core data structures for search requests, ranked
// results, and timing metrics exchanged with the ranking API.
package models

import "github.com/hyperjump/kurabe/pkg/utils"

// Result is one ranked document under one scoring model. Score sign and
// magnitude are model-specific; only rank order within a single list is
// meaningful.
type Result struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Score        float64  `json:"score"`
	Snippet      string   `json:"snippet"`
	MatchedWords []string `json:"matchedWords,omitempty"`
	Filename     string   `json:"filename,omitempty"`
}

// DocumentFilename returns the origin filename, deriving one from the title
// when the backend did not supply it.
func (r *Result) DocumentFilename() string {
	if r.Filename != "" {
		return r.Filename
	}
	return utils.Slug(r.Title) + ".pdf"
}

// Metrics holds search timing in milliseconds: query preprocessing plus each
// model's total execution time. Purely informational.
type Metrics struct {
	PreprocessTime float64 `json:"preprocessTime"`
	TFIDFTime      float64 `json:"tfidfTime"`
	BM25Time       float64 `json:"bm25Time"`
}

// SearchResponse is the ranking API's answer for a single query: the two
// ranked lists (index 0 = most relevant) and the timing metrics, produced
// atomically. A new response entirely replaces the prior one.
type SearchResponse struct {
	TFIDF   []Result `json:"tfidf"`
	BM25    []Result `json:"bm25"`
	Metrics Metrics  `json:"metrics"`
}
