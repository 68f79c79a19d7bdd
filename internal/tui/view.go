package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyperjump/kurabe/internal/highlight"
	"github.com/hyperjump/kurabe/internal/session"
	"github.com/hyperjump/kurabe/pkg/utils"
)

const snippetLimit = 160

// View renders the whole comparison screen.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Kurabe — TF-IDF vs BM25"))
	b.WriteString("\n\n")
	b.WriteString("Search: " + m.input.View())
	b.WriteString("\n")

	snap := m.session.Snapshot()
	b.WriteString(m.renderStatus(snap))
	b.WriteString("\n\n")

	if m.showCharts {
		b.WriteString(m.renderCharts())
	} else {
		view := m.session.PageView()
		b.WriteString(m.renderColumns(view))
		b.WriteString("\n")
		b.WriteString(m.renderPageBar(view))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter search · ←/→ page · tab charts · esc quit"))
	return b.String()
}

func (m *Model) renderStatus(snap session.Snapshot) string {
	switch snap.State {
	case session.StateLoading:
		return m.styles.Status.Render("Searching...")
	case session.StateFailed:
		return m.styles.Error.Render("Error: " + snap.Error)
	case session.StateLoaded:
		return m.styles.Status.Render(fmt.Sprintf(
			"%q · preprocess %.1fms · tfidf %.1fms · bm25 %.1fms",
			snap.ExecutedQuery, snap.Metrics.PreprocessTime, snap.Metrics.TFIDFTime, snap.Metrics.BM25Time))
	default:
		return m.styles.Status.Render("Type a query and press enter.")
	}
}

func (m *Model) renderColumns(view *session.PageView) string {
	colWidth := m.width/2 - 2
	if colWidth < 30 {
		colWidth = 30
	}
	left := m.renderColumn("TF-IDF", view.TFIDF, colWidth)
	right := m.renderColumn("BM25", view.BM25, colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) renderColumn(name string, cards []session.Card, width int) string {
	var b strings.Builder
	b.WriteString(m.styles.ColumnHead.Render(name))
	b.WriteString("\n")
	if len(cards) == 0 {
		b.WriteString(m.styles.Muted.Render("no results"))
		b.WriteString("\n")
	}
	for _, card := range cards {
		title := fmt.Sprintf("%d. %s", card.Position, card.Title)
		b.WriteString(m.styles.CardTitle.Render(utils.Truncate(title, width-12)))
		b.WriteString(" ")
		b.WriteString(m.styles.Score.Render(fmt.Sprintf("%.4f", card.Score)))
		if card.InBoth {
			b.WriteString(" " + m.styles.InBoth.Render("●"))
		}
		b.WriteString("\n")
		b.WriteString(m.renderSnippet(card.Snippet))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(card.Filename))
		b.WriteString("\n\n")
	}
	return m.styles.Column.Width(width).Render(b.String())
}

func (m *Model) renderSnippet(segments []highlight.Segment) string {
	var b strings.Builder
	length := 0
	for _, seg := range segments {
		text := seg.Text
		if length+len(text) > snippetLimit {
			text = utils.Truncate(text, snippetLimit-length)
		}
		if seg.Match {
			b.WriteString(m.styles.Match.Render(text))
		} else {
			b.WriteString(text)
		}
		length += len(seg.Text)
		if length >= snippetLimit {
			break
		}
	}
	return b.String()
}

func (m *Model) renderPageBar(view *session.PageView) string {
	parts := make([]string, 0, len(view.Pages))
	for _, item := range view.Pages {
		if item.Gap {
			parts = append(parts, m.styles.PageNumber.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", item.Page)
		if item.Page == view.Page {
			parts = append(parts, m.styles.PageActive.Render(label))
		} else {
			parts = append(parts, m.styles.PageNumber.Render(label))
		}
	}
	return "Page: " + strings.Join(parts, " ")
}

func (m *Model) renderCharts() string {
	charts := m.session.Charts()
	if !charts.HasData {
		return m.styles.Muted.Render("No data available.")
	}

	var b strings.Builder
	b.WriteString(m.styles.ColumnHead.Render("Timing"))
	b.WriteString("\n")
	maxMillis := 0.0
	for _, bar := range charts.Times {
		if bar.Millis > maxMillis {
			maxMillis = bar.Millis
		}
	}
	for _, tb := range charts.Times {
		b.WriteString(fmt.Sprintf("%-14s %s %.1fms\n", tb.Label, gauge(tb.Millis, maxMillis, 30), tb.Millis))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ColumnHead.Render("Scores by rank"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%4s  %-34s %10s %10s\n", "rank", "document", "tfidf", "bm25"))
	for _, row := range charts.Rows {
		b.WriteString(fmt.Sprintf("%4d  %-34s %10s %10s\n",
			row.Rank, utils.Truncate(row.Title, 34), scoreCell(row.TFIDF), scoreCell(row.BM25)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ColumnHead.Render("Radar (percent of best score)"))
	b.WriteString("\n")
	for _, rr := range charts.Radar {
		b.WriteString(fmt.Sprintf("%-34s tfidf %s %5.1f%%  bm25 %s %5.1f%%\n",
			utils.Truncate(rr.Title, 34), gauge(rr.TFIDF, 100, 10), rr.TFIDF, gauge(rr.BM25, 100, 10), rr.BM25))
	}
	return b.String()
}

func scoreCell(s *float64) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *s)
}

// gauge renders a fixed-width horizontal bar for value relative to max.
func gauge(value, max float64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(value / max * float64(width))
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
