package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kurabe/internal/models"
)

func loadedSession(t *testing.T, resp *models.SearchResponse, query string) *Session {
	t.Helper()
	s := newTestSession(&fakeSearcher{})
	token, ok := s.Start(query)
	require.True(t, ok)
	require.True(t, s.Finish(token, resp, nil))
	return s
}

func TestPageView_PairedSlices(t *testing.T) {
	resp := &models.SearchResponse{}
	for i := 0; i < 10; i++ {
		resp.TFIDF = append(resp.TFIDF, models.Result{ID: string(rune('a' + i)), Title: "t", Score: float64(10 - i)})
	}
	for i := 0; i < 6; i++ {
		resp.BM25 = append(resp.BM25, models.Result{ID: string(rune('p' + i)), Title: "t", Score: float64(6 - i)})
	}
	s := loadedSession(t, resp, "x")

	view := s.PageView()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.TFIDF, 4)
	assert.Len(t, view.BM25, 4)
	assert.Equal(t, 1, view.TFIDF[0].Position)

	s.SetPage(3)
	view = s.PageView()
	assert.Len(t, view.TFIDF, 2)
	assert.Len(t, view.BM25, 0)
	assert.Equal(t, 9, view.TFIDF[0].Position)
	assert.Equal(t, 10, view.TFIDF[1].Position)
}

func TestPageView_InBothMarksCurrentPageOnly(t *testing.T) {
	resp := &models.SearchResponse{
		TFIDF: []models.Result{
			{ID: "shared", Title: "t", Score: 9},
			{ID: "only-a", Title: "t", Score: 8},
		},
		BM25: []models.Result{
			{ID: "shared", Title: "t", Score: 7},
			{ID: "only-b", Title: "t", Score: 6},
		},
	}
	s := loadedSession(t, resp, "x")
	view := s.PageView()

	byID := map[string]Card{}
	for _, c := range append(view.TFIDF, view.BM25...) {
		if c.InBoth {
			byID[c.ID] = c
		}
	}
	assert.Contains(t, byID, "shared")
	assert.Len(t, byID, 1)
}

func TestPageView_HighlightsWithExecutedQueryAndMatchedWords(t *testing.T) {
	resp := &models.SearchResponse{
		TFIDF: []models.Result{{
			ID: "a", Title: "t", Score: 1,
			Snippet:      "os gatos dormem no sofá",
			MatchedWords: []string{"gatos"},
		}},
	}
	s := loadedSession(t, resp, "gato")

	view := s.PageView()
	require.Len(t, view.TFIDF, 1)
	matched := ""
	for _, seg := range view.TFIDF[0].Snippet {
		if seg.Match {
			matched = seg.Text
		}
	}
	// "gato" alone cannot match "gatos"; the backend's matched word can.
	assert.Equal(t, "gatos", matched)
}

func TestPageView_EmptySession(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	view := s.PageView()
	require.NotNil(t, view)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Empty(t, view.TFIDF)
	assert.Empty(t, view.BM25)
}

func TestPageView_DerivedFilename(t *testing.T) {
	resp := &models.SearchResponse{
		TFIDF: []models.Result{
			{ID: "a", Title: "Modelos Vetoriais", Score: 1},
			{ID: "b", Title: "t", Score: 1, Filename: "doc7.pdf"},
		},
	}
	s := loadedSession(t, resp, "x")
	view := s.PageView()
	assert.Equal(t, "modelos_vetoriais.pdf", view.TFIDF[0].Filename)
	assert.Equal(t, "doc7.pdf", view.TFIDF[1].Filename)
}

func TestCharts(t *testing.T) {
	s := loadedSession(t, sampleResponse(), "x")
	charts := s.Charts()
	require.True(t, charts.HasData)
	assert.Len(t, charts.Rows, 3)
	assert.Len(t, charts.Radar, 3)
	require.Len(t, charts.Times, 3)
	assert.Equal(t, 2.0, charts.Times[1].Millis)
}

func TestCharts_NoData(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	charts := s.Charts()
	assert.False(t, charts.HasData)
	assert.Empty(t, charts.Rows)
	assert.Empty(t, charts.Radar)

	// Loaded but empty lists still report no chart data.
	token, _ := s.Start("x")
	require.True(t, s.Finish(token, &models.SearchResponse{}, nil))
	charts = s.Charts()
	assert.False(t, charts.HasData)
}
