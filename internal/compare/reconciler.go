// Package compare merges the TF-IDF and BM25 rankings into a single
// rank-ordered dataset for the score and radar charts.
//
// Absolute scores are not comparable across the two models; rows carry each
// model's raw score (absent when the model did not rank the document inside
// its comparison window) and the radar projection normalizes against the
// single highest score seen across the whole window.
package compare

import (
	"sort"

	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/pkg/utils"
)

// MaxWindow caps how many top entries per model feed the comparison,
// independent of the pagination column size.
const MaxWindow = 12

// RadarAxes is how many reconciled rows the radar projection keeps.
const RadarAxes = 6

// Row is one document in the merged comparison: nil score means the model
// did not rank the document within its window (absent, not zero). Rank is a
// dense 1..K sequence over the sorted rows.
type Row struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Rank  int      `json:"rank"`
	TFIDF *float64 `json:"tfidf"`
	BM25  *float64 `json:"bm25"`
}

// maxScore returns the larger of the row's scores, treating absent as 0.
func (r *Row) maxScore() float64 {
	m := 0.0
	if r.TFIDF != nil && *r.TFIDF > m {
		m = *r.TFIDF
	}
	if r.BM25 != nil && *r.BM25 > m {
		m = *r.BM25
	}
	return m
}

// Window returns the comparison window size for the two list lengths:
// min(MaxWindow, max(lenA, lenB)).
func Window(lenA, lenB int) int {
	n := lenA
	if lenB > n {
		n = lenB
	}
	if n > MaxWindow {
		n = MaxWindow
	}
	return n
}

// Reconcile merges the top windows of the two rankings. The candidate set is
// the union of each model's own top-N ids; a document ranked inside one
// model's window contributes that model's score only, even if the other
// model ranks it further down. Rows are sorted by descending max score with
// the document id as tiebreak, then densely ranked from 1.
func Reconcile(tfidf, bm25 []models.Result) []Row {
	topN := Window(len(tfidf), len(bm25))
	if topN == 0 {
		return nil
	}

	rows := make(map[string]*Row)
	for i := 0; i < topN && i < len(tfidf); i++ {
		r := tfidf[i]
		score := r.Score
		rows[r.ID] = &Row{ID: r.ID, Title: r.Title, TFIDF: &score}
	}
	for i := 0; i < topN && i < len(bm25); i++ {
		r := bm25[i]
		score := r.Score
		row, ok := rows[r.ID]
		if !ok {
			row = &Row{ID: r.ID, Title: r.Title}
			rows[r.ID] = row
		}
		row.BM25 = &score
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.TFIDF == nil && row.BM25 == nil {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].maxScore(), out[j].maxScore()
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// RadarRow is one radar axis: both model scores expressed as a percentage of
// the highest score across the whole reconciled window. A model that did not
// rank the document projects to 0.
type RadarRow struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	TFIDF float64 `json:"tfidf"`
	BM25  float64 `json:"bm25"`
}

// Radar projects the first min(RadarAxes, len(rows)) reconciled rows onto
// percentages of the global maximum score. When every score is zero the
// projection is all zeros rather than a division by zero.
func Radar(rows []Row) []RadarRow {
	if len(rows) == 0 {
		return nil
	}
	maxScore := 0.0
	for i := range rows {
		if s := rows[i].maxScore(); s > maxScore {
			maxScore = s
		}
	}
	n := len(rows)
	if n > RadarAxes {
		n = RadarAxes
	}
	out := make([]RadarRow, 0, n)
	for _, row := range rows[:n] {
		rr := RadarRow{ID: row.ID, Title: row.Title}
		if row.TFIDF != nil {
			rr.TFIDF = utils.Percent(*row.TFIDF, maxScore)
		}
		if row.BM25 != nil {
			rr.BM25 = utils.Percent(*row.BM25, maxScore)
		}
		out = append(out, rr)
	}
	return out
}

// TimeBar is one row of the timing chart.
type TimeBar struct {
	Label  string  `json:"label"`
	Millis float64 `json:"millis"`
}

// TimeBars formats the search metrics as the three timing chart rows. No
// derived computation, only labelling.
func TimeBars(m models.Metrics) []TimeBar {
	return []TimeBar{
		{Label: "Preprocessing", Millis: m.PreprocessTime},
		{Label: "TF-IDF", Millis: m.TFIDFTime},
		{Label: "BM25", Millis: m.BM25Time},
	}
}
