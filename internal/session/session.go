// Package session owns the state of one comparison session: the query text,
// the model parameters, the last ranking response, and the page cursor.
//
// The session is an explicit state machine (Idle → Loading → Loaded/Failed,
// with Loaded and Failed returning to Loading on the next search). Derived
// views (paired pages, charts) are pure recomputations from the current
// response; nothing derived is cached or mutated in place.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/paginate"
)

// State is the session's position in the search lifecycle.
type State int

const (
	// StateIdle is the initial state before any search has started.
	StateIdle State = iota
	// StateLoading means a search is in flight.
	StateLoading
	// StateLoaded means the last search succeeded.
	StateLoaded
	// StateFailed means the last search failed; any prior response stays
	// visible.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Searcher is the port to the external ranking API.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
}

// Params are the model parameters sent with every search.
type Params struct {
	K1          float64
	B           float64
	TFIDFWeight string
}

// Config seeds a new session.
type Config struct {
	// DefaultQuery is the query the one-time bootstrap search runs.
	DefaultQuery string
	// PageSize is the column window size for paired pagination.
	PageSize int
	// Params are the initial model parameters.
	Params Params
}

// Token identifies one started search. Finishing with a token that has been
// superseded by a newer search is a no-op, so a late response never
// overwrites a fresher one.
type Token struct {
	gen     uint64
	Request models.SearchRequest
}

// Session is the single source of truth for one user's comparison session.
// All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	searcher Searcher
	logger   *zap.Logger
	pager    *paginate.Pager

	defaultQuery string
	params       Params

	state         State
	queryField    string
	executedQuery string
	resp          *models.SearchResponse
	errMsg        string
	page          int
	generation    uint64
	bootstrapped  bool
}

// New creates an idle session backed by the given searcher.
func New(searcher Searcher, cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		searcher:     searcher,
		logger:       logger,
		pager:        paginate.NewPager(cfg.PageSize),
		defaultQuery: cfg.DefaultQuery,
		params:       cfg.Params,
		state:        StateIdle,
		page:         1,
	}
}

// Bootstrap starts the one-time default search. It returns false on every
// call after the first, so re-renders and remounts cannot trigger a second
// bootstrap.
func (s *Session) Bootstrap() (Token, bool) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return Token{}, false
	}
	s.bootstrapped = true
	query := s.defaultQuery
	s.mu.Unlock()
	return s.Start(query)
}

// Start begins a search for query. A blank query is ignored and returns
// false. Otherwise the session enters Loading, the prior error is cleared,
// and the prior response stays visible until superseded.
func (s *Session) Start(query string) (Token, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Token{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = StateLoading
	s.errMsg = ""
	req := models.SearchRequest{
		Query:       query,
		K1:          s.params.K1,
		B:           s.params.B,
		TFIDFWeight: s.params.TFIDFWeight,
	}
	s.logger.Debug("search started", zap.String("query", query), zap.Uint64("generation", s.generation))
	return Token{gen: s.generation, Request: req}, true
}

// Finish records the outcome of the search identified by token. Stale tokens
// (a newer search has started since) are discarded and Finish reports false.
// On success the response replaces the prior one atomically, the page resets
// to 1, and the executed query is echoed into the query field when it
// differs. On failure the error message is stored and the prior response
// remains visible.
func (s *Session) Finish(token Token, resp *models.SearchResponse, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.gen != s.generation {
		s.logger.Debug("stale search result discarded",
			zap.Uint64("token_generation", token.gen),
			zap.Uint64("current_generation", s.generation))
		return false
	}
	if err != nil {
		s.state = StateFailed
		s.errMsg = err.Error()
		s.logger.Warn("search failed", zap.String("query", token.Request.Query), zap.Error(err))
		return true
	}
	s.state = StateLoaded
	s.resp = resp
	s.executedQuery = token.Request.Query
	s.page = 1
	if s.queryField != token.Request.Query {
		s.queryField = token.Request.Query
	}
	return true
}

// Run executes a started search synchronously: it calls the searcher and
// finishes with the outcome. The search error, if any, is returned for
// callers that surface it directly (the JSON server); the session state
// carries it either way.
func (s *Session) Run(ctx context.Context, token Token) error {
	resp, err := s.searcher.Search(ctx, token.Request)
	s.Finish(token, resp, err)
	return err
}

// Searcher returns the session's ranking API port, for shells that issue the
// call themselves.
func (s *Session) Searcher() Searcher { return s.searcher }

// SetParams replaces the model parameters used by subsequent searches.
func (s *Session) SetParams(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// Params returns the current model parameters.
func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetQueryField stores the text currently shown in the query input.
func (s *Session) SetQueryField(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryField = q
}

// SetPage moves the shared page cursor, clamped into the valid range. It
// never wraps.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lenA, lenB := s.listLengthsLocked()
	s.page = s.pager.Clamp(page, lenA, lenB)
}

// NextPage advances the page cursor by one, clamped.
func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	lenA, lenB := s.listLengthsLocked()
	s.page = s.pager.Clamp(s.page+1, lenA, lenB)
}

// PrevPage moves the page cursor back by one, clamped.
func (s *Session) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	lenA, lenB := s.listLengthsLocked()
	s.page = s.pager.Clamp(s.page-1, lenA, lenB)
}

func (s *Session) listLengthsLocked() (int, int) {
	if s.resp == nil {
		return 0, 0
	}
	return len(s.resp.TFIDF), len(s.resp.BM25)
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	State         State
	QueryField    string
	ExecutedQuery string
	Error         string
	HasResponse   bool
	Page          int
	TotalPages    int
	Metrics       models.Metrics
}

// Snapshot returns the current rendering state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	lenA, lenB := s.listLengthsLocked()
	snap := Snapshot{
		State:         s.state,
		QueryField:    s.queryField,
		ExecutedQuery: s.executedQuery,
		Error:         s.errMsg,
		HasResponse:   s.resp != nil,
		Page:          s.page,
		TotalPages:    s.pager.TotalPages(lenA, lenB),
	}
	if s.resp != nil {
		snap.Metrics = s.resp.Metrics
	}
	return snap
}
