// Package cli renders one-shot comparison reports for the compare command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kurabe/internal/highlight"
	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/session"
)

// OutputFormat is the format for comparison report output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// Report bundles everything the compare command prints.
type Report struct {
	Query   string              `json:"query"`
	Metrics models.Metrics      `json:"metrics"`
	View    *session.PageView   `json:"view"`
	Charts  *session.ChartsView `json:"charts"`
}

// WriteReport writes the report to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteReport(w io.Writer, report *Report, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		writeReportText(w, report)
		return nil
	}
}

func writeReportText(w io.Writer, report *Report) {
	fmt.Fprintf(w, "\nQuery: %q (preprocess %.1fms, TF-IDF %.1fms, BM25 %.1fms)\n",
		report.Query, report.Metrics.PreprocessTime, report.Metrics.TFIDFTime, report.Metrics.BM25Time)
	fmt.Fprintf(w, "Page %d of %d\n\n", report.View.Page, report.View.TotalPages)

	writeColumn(w, "TF-IDF (vector model)", report.View.TFIDF)
	writeColumn(w, "BM25 (probabilistic model)", report.View.BM25)

	if report.Charts == nil || !report.Charts.HasData {
		fmt.Fprintln(w, "No comparison data available.")
		return
	}
	writeScoreTable(w, report.Charts)
	writeRadarTable(w, report.Charts)
}

func writeColumn(w io.Writer, header string, cards []session.Card) {
	fmt.Fprintf(w, "--- %s ---\n", header)
	if len(cards) == 0 {
		fmt.Fprintln(w, "(no results)")
		fmt.Fprintln(w)
		return
	}
	for _, card := range cards {
		both := ""
		if card.InBoth {
			both = "  [in both]"
		}
		fmt.Fprintf(w, "%2d. %s (%.4f)%s\n", card.Position, card.Title, card.Score, both)
		fmt.Fprintf(w, "    %s\n", renderSegments(card.Snippet))
		fmt.Fprintf(w, "    file: %s\n", card.Filename)
	}
	fmt.Fprintln(w)
}

// renderSegments flattens highlight segments to plain text, wrapping matched
// words in guillemets.
func renderSegments(segments []highlight.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Match {
			b.WriteString("«")
			b.WriteString(seg.Text)
			b.WriteString("»")
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func writeScoreTable(w io.Writer, charts *session.ChartsView) {
	fmt.Fprintln(w, "--- Score comparison (top ranks) ---")
	fmt.Fprintf(w, "%4s  %-30s %10s %10s\n", "rank", "document", "tfidf", "bm25")
	for _, row := range charts.Rows {
		fmt.Fprintf(w, "%4d  %-30s %10s %10s\n",
			row.Rank, truncateTitle(row.Title), formatScore(row.TFIDF), formatScore(row.BM25))
	}
	fmt.Fprintln(w)
}

func writeRadarTable(w io.Writer, charts *session.ChartsView) {
	fmt.Fprintln(w, "--- Radar (percent of best score) ---")
	for _, rr := range charts.Radar {
		fmt.Fprintf(w, "%-30s tfidf %5.1f%%  bm25 %5.1f%%\n", truncateTitle(rr.Title), rr.TFIDF, rr.BM25)
	}
	fmt.Fprintln(w)
}

func formatScore(s *float64) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *s)
}

func truncateTitle(title string) string {
	if len(title) <= 30 {
		return title
	}
	return title[:27] + "..."
}
