package session

import (
	"github.com/hyperjump/kurabe/internal/compare"
	"github.com/hyperjump/kurabe/internal/highlight"
	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/paginate"
)

// Card is one result on the current page, ready to render.
type Card struct {
	Position int                 `json:"position"`
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Score    float64             `json:"score"`
	Snippet  []highlight.Segment `json:"snippet"`
	Filename string              `json:"filename"`
	// InBoth marks documents present on this page in both columns.
	InBoth bool `json:"inBoth"`
}

// PageView is the paired page of both rankings plus the page-number control.
type PageView struct {
	Query      string          `json:"query"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Pages      []paginate.Item `json:"pages"`
	TFIDF      []Card          `json:"tfidf"`
	BM25       []Card          `json:"bm25"`
}

// PageView derives the paired view for the current page. With no response
// loaded it returns an empty single-page view, never nil.
func (s *Session) PageView() *PageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lenA, lenB := s.listLengthsLocked()
	page := s.pager.Clamp(s.page, lenA, lenB)
	total := s.pager.TotalPages(lenA, lenB)
	view := &PageView{
		Query:      s.executedQuery,
		Page:       page,
		TotalPages: total,
		Pages:      paginate.PageNumbers(page, total),
	}
	if s.resp == nil {
		return view
	}

	view.TFIDF = s.cardsLocked(s.resp.TFIDF, page)
	view.BM25 = s.cardsLocked(s.resp.BM25, page)

	// Mark ids visible in both columns on this page.
	onPage := make(map[string]bool, len(view.TFIDF))
	for _, c := range view.TFIDF {
		onPage[c.ID] = true
	}
	for i := range view.BM25 {
		if onPage[view.BM25[i].ID] {
			view.BM25[i].InBoth = true
			for j := range view.TFIDF {
				if view.TFIDF[j].ID == view.BM25[i].ID {
					view.TFIDF[j].InBoth = true
				}
			}
		}
	}
	return view
}

func (s *Session) cardsLocked(list []models.Result, page int) []Card {
	lo, hi := s.pager.Bounds(page, len(list))
	cards := make([]Card, 0, hi-lo)
	for i := lo; i < hi; i++ {
		r := list[i]
		cards = append(cards, Card{
			Position: s.pager.RealIndex(page, i-lo),
			ID:       r.ID,
			Title:    r.Title,
			Score:    r.Score,
			Snippet:  highlight.Highlight(r.Snippet, s.executedQuery, r.MatchedWords),
			Filename: r.DocumentFilename(),
		})
	}
	return cards
}

// ChartsView carries every chart dataset derived from the full (unpaginated)
// result sets.
type ChartsView struct {
	HasData bool               `json:"hasData"`
	Rows    []compare.Row      `json:"rows"`
	Radar   []compare.RadarRow `json:"radar"`
	Times   []compare.TimeBar  `json:"times"`
}

// Charts derives the comparison chart datasets from the current response.
// With no response, or no reconcilable rows, HasData is false and the chart
// slices are empty.
func (s *Session) Charts() *ChartsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resp == nil {
		return &ChartsView{}
	}
	rows := compare.Reconcile(s.resp.TFIDF, s.resp.BM25)
	return &ChartsView{
		HasData: len(rows) > 0,
		Rows:    rows,
		Radar:   compare.Radar(rows),
		Times:   compare.TimeBars(s.resp.Metrics),
	}
}
