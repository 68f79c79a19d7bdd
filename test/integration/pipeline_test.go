// Package integration exercises the full comparison pipeline: a fake ranking
// backend behind the HTTP client, a session on top, and the JSON API shell.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperjump/kurabe/internal/client"
	"github.com/hyperjump/kurabe/internal/config"
	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/server"
	"github.com/hyperjump/kurabe/internal/session"
	"go.uber.org/zap"
)

// newBackend serves POST /api/search with n results per model. Titles and IDs
// are deterministic so tests can assert pairing across pages.
func newBackend(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		var req models.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := models.SearchResponse{
			Metrics: models.Metrics{PreprocessTime: 1.5, TFIDFTime: 10, BM25Time: 12},
		}
		for i := 0; i < n; i++ {
			resp.TFIDF = append(resp.TFIDF, models.Result{
				ID:           fmt.Sprintf("doc-%d", i),
				Title:        fmt.Sprintf("Documento %d", i),
				Score:        float64(n - i),
				Snippet:      "estudo sobre gatos e cães",
				MatchedWords: []string{"gatos"},
				Filename:     fmt.Sprintf("doc_%d.pdf", i),
			})
			// BM25 ranks the same documents in reverse.
			resp.BM25 = append(resp.BM25, models.Result{
				ID:       fmt.Sprintf("doc-%d", n-1-i),
				Title:    fmt.Sprintf("Documento %d", n-1-i),
				Score:    float64(n-i) * 2,
				Snippet:  "estudo sobre gatos e cães",
				Filename: fmt.Sprintf("doc_%d.pdf", n-1-i),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newHandler(t *testing.T, backend *httptest.Server, pageSize int) http.Handler {
	t.Helper()
	c := client.New(backend.URL)
	sess := session.New(c, session.Config{PageSize: pageSize}, zap.NewNop())
	srv := server.NewServer(sess, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
	return srv.Handler()
}

func TestIntegration_SearchEndpoint(t *testing.T) {
	backend := newBackend(t, 10)
	defer backend.Close()
	h := newHandler(t, backend, 4)

	body, _ := json.Marshal(models.SearchRequest{Query: "gatos"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result struct {
		State string            `json:"state"`
		View  *session.PageView `json:"view"`
		Chart struct {
			HasData bool `json:"hasData"`
		} `json:"charts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.State != "loaded" {
		t.Errorf("state = %q, want loaded", result.State)
	}
	if result.View.Page != 1 || result.View.TotalPages != 3 {
		t.Errorf("page = %d/%d, want 1/3", result.View.Page, result.View.TotalPages)
	}
	if len(result.View.TFIDF) != 4 || len(result.View.BM25) != 4 {
		t.Errorf("columns = %d/%d, want 4/4", len(result.View.TFIDF), len(result.View.BM25))
	}
	if !result.Chart.HasData {
		t.Error("charts should have data after a search")
	}
	// Page 1 shows docs 0-3 under TF-IDF and 9-6 under BM25: no overlap, so
	// no card carries the shared marker.
	for _, card := range append(result.View.TFIDF, result.View.BM25...) {
		if card.InBoth {
			t.Errorf("card %s marked as shared on a disjoint page", card.ID)
		}
	}
}

func TestIntegration_PageNavigation(t *testing.T) {
	backend := newBackend(t, 10)
	defer backend.Close()
	h := newHandler(t, backend, 4)

	body, _ := json.Marshal(models.SearchRequest{Query: "gatos"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("search failed: %s", rec.Body.String())
	}

	// The last page holds the remainder; out-of-range requests clamp to it.
	for _, page := range []string{"3", "99"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/page/"+page, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("page %s: status = %d", page, rec.Code)
		}
		var view session.PageView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatal(err)
		}
		if view.Page != 3 {
			t.Errorf("page %s: landed on %d, want 3", page, view.Page)
		}
		if len(view.TFIDF) != 2 {
			t.Errorf("page %s: %d cards on last page, want 2", page, len(view.TFIDF))
		}
		if view.TFIDF[0].Position != 9 {
			t.Errorf("page %s: first position = %d, want 9", page, view.TFIDF[0].Position)
		}
	}
}

func TestIntegration_PageBeforeSearch(t *testing.T) {
	backend := newBackend(t, 4)
	defer backend.Close()
	h := newHandler(t, backend, 4)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/page/2", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 before any search", rec.Code)
	}
}

func TestIntegration_BackendFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	}))
	defer backend.Close()
	h := newHandler(t, backend, 4)

	body, _ := json.Marshal(models.SearchRequest{Query: "gatos"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body)))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 when the ranking API is down", rec.Code)
	}
}
