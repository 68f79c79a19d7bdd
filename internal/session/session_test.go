package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kurabe/internal/models"
)

type fakeSearcher struct {
	searchFunc func(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
	calls      int
}

func (f *fakeSearcher) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	f.calls++
	if f.searchFunc != nil {
		return f.searchFunc(ctx, req)
	}
	return &models.SearchResponse{}, nil
}

func newTestSession(searcher Searcher) *Session {
	return New(searcher, Config{
		DefaultQuery: "recuperação de informação",
		PageSize:     4,
		Params:       Params{K1: 1.2, B: 0.75, TFIDFWeight: models.WeightLog},
	}, nil)
}

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		TFIDF: []models.Result{
			{ID: "a", Title: "Doc A", Score: 10, Snippet: "o gato subiu", MatchedWords: []string{"gato"}},
			{ID: "b", Title: "Doc B", Score: 5, Snippet: "outro trecho"},
		},
		BM25: []models.Result{
			{ID: "b", Title: "Doc B", Score: 8, Snippet: "outro trecho"},
			{ID: "c", Title: "Doc C", Score: 3, Snippet: "mais um"},
		},
		Metrics: models.Metrics{PreprocessTime: 1, TFIDFTime: 2, BM25Time: 3},
	}
}

func TestSession_BootstrapRunsOnce(t *testing.T) {
	s := newTestSession(&fakeSearcher{})

	token, ok := s.Bootstrap()
	require.True(t, ok)
	assert.Equal(t, "recuperação de informação", token.Request.Query)
	assert.Equal(t, StateLoading, s.Snapshot().State)

	// Re-render before the first response arrives must not start another.
	_, ok = s.Bootstrap()
	assert.False(t, ok)
	_, ok = s.Bootstrap()
	assert.False(t, ok)
}

func TestSession_BlankQueryIsIgnored(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	_, ok := s.Start("   ")
	assert.False(t, ok)
	assert.Equal(t, StateIdle, s.Snapshot().State)
}

func TestSession_SuccessResetsPageAndEchoesQuery(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	s.SetQueryField("typed text")

	token, ok := s.Start("gato")
	require.True(t, ok)
	require.True(t, s.Finish(token, sampleResponse(), nil))

	snap := s.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, 1, snap.Page)
	// Executed query echoed into the field because it differed.
	assert.Equal(t, "gato", snap.QueryField)
	assert.Equal(t, "gato", snap.ExecutedQuery)

	s.SetPage(99)
	assert.Equal(t, 1, s.Snapshot().Page) // 4 results max per list, one page

	// A new successful search resets the page unconditionally.
	big := sampleResponse()
	for i := 0; i < 10; i++ {
		big.TFIDF = append(big.TFIDF, models.Result{ID: string(rune('h' + i)), Title: "x", Score: 1})
	}
	token, _ = s.Start("outra busca")
	s.SetPage(3)
	require.True(t, s.Finish(token, big, nil))
	assert.Equal(t, 1, s.Snapshot().Page)
}

func TestSession_FailureKeepsPriorResponse(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	token, _ := s.Start("gato")
	require.True(t, s.Finish(token, sampleResponse(), nil))

	token, _ = s.Start("falha")
	require.True(t, s.Finish(token, nil, errors.New("search API returned 503: corpus not loaded")))

	snap := s.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Contains(t, snap.Error, "503")
	assert.True(t, snap.HasResponse, "prior response must remain visible")
	view := s.PageView()
	assert.NotEmpty(t, view.TFIDF)
}

func TestSession_StaleResponseIsDiscarded(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	first, _ := s.Start("primeira")
	second, _ := s.Start("segunda")

	// The superseded search finishes late; its result must not win.
	assert.False(t, s.Finish(first, sampleResponse(), nil))
	assert.Equal(t, StateLoading, s.Snapshot().State)

	require.True(t, s.Finish(second, sampleResponse(), nil))
	assert.Equal(t, "segunda", s.Snapshot().ExecutedQuery)
}

func TestSession_StartClearsError(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	token, _ := s.Start("x")
	s.Finish(token, nil, errors.New("boom"))
	require.NotEmpty(t, s.Snapshot().Error)

	_, ok := s.Start("y")
	require.True(t, ok)
	assert.Empty(t, s.Snapshot().Error)
	assert.Equal(t, StateLoading, s.Snapshot().State)
}

func TestSession_Run(t *testing.T) {
	searcher := &fakeSearcher{searchFunc: func(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
		assert.Equal(t, 1.2, req.K1)
		assert.Equal(t, 0.75, req.B)
		return sampleResponse(), nil
	}}
	s := newTestSession(searcher)
	token, _ := s.Start("gato")
	require.NoError(t, s.Run(context.Background(), token))
	assert.Equal(t, StateLoaded, s.Snapshot().State)
	assert.Equal(t, 1, searcher.calls)
}

func TestSession_PageNavigationClamps(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	resp := &models.SearchResponse{}
	for i := 0; i < 10; i++ {
		resp.TFIDF = append(resp.TFIDF, models.Result{ID: string(rune('a' + i)), Title: "x", Score: float64(10 - i)})
	}
	for i := 0; i < 6; i++ {
		resp.BM25 = append(resp.BM25, models.Result{ID: string(rune('a' + i)), Title: "x", Score: float64(6 - i)})
	}
	token, _ := s.Start("x")
	require.True(t, s.Finish(token, resp, nil))

	assert.Equal(t, 3, s.Snapshot().TotalPages)
	s.PrevPage()
	assert.Equal(t, 1, s.Snapshot().Page)
	s.NextPage()
	s.NextPage()
	s.NextPage()
	s.NextPage()
	assert.Equal(t, 3, s.Snapshot().Page)
}
