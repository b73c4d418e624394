package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"review_collector/internal/domain"
	"review_collector/internal/service"
)

const titleWidth = 60

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func mark(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}

func renderStatus(w io.Writer, status map[string]bool) {
	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	t := newTable(w)
	t.AppendHeader(table.Row{"Integration", "Status"})
	for _, name := range names {
		t.AppendRow(table.Row{name, mark(status[name])})
	}
	t.Render()
}

func renderStats(w io.Writer, stats domain.Stats) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Table", "Rows"})
	t.AppendRow(table.Row{"shoes", stats.Shoes})
	t.AppendRow(table.Row{"curatedSources", stats.CuratedSources})
	t.Render()
}

func renderShoes(w io.Writer, shoes []domain.Shoe) {
	if len(shoes) == 0 {
		fmt.Fprintln(w, "no shoes tracked")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Brand", "Model", "Category", "Created"})
	for _, s := range shoes {
		t.AppendRow(table.Row{s.ID, s.Brand, s.ModelName, s.Category, s.CreatedAt.Format("2006-01-02")})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(shoes)})
	t.Render()
}

func renderRefs(w io.Writer, refs []domain.ShoeRef) {
	if len(refs) == 0 {
		fmt.Fprintln(w, "no shoes found")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Brand", "Model", "Found at"})
	for i, r := range refs {
		t.AppendRow(table.Row{i + 1, r.Brand, r.ModelName, r.SourceURL})
	}
	t.Render()
}

func renderImport(w io.Writer, stats service.ImportStats) {
	fmt.Fprintf(w, "created: %d, existing: %d, errors: %d\n", stats.Created, stats.Existing, stats.Errors)
}

func renderCollectStats(w io.Writer, stats *domain.CollectStats) {
	t := newTable(w)
	t.SetTitle(stats.Shoe)
	t.AppendHeader(table.Row{"Provider", "Fetched", "New", "Skipped", "Errors", "Published", "Note"})
	for _, p := range stats.Providers {
		note := ""
		switch {
		case p.NotConfigured:
			note = "not configured"
		case p.QueryFailures > 0:
			note = strconv.Itoa(p.QueryFailures) + " query failures"
		}
		t.AppendRow(table.Row{p.Provider, p.Fetched, p.New, p.Skipped, p.Errors, p.Published, note})
	}
	t.AppendFooter(table.Row{"Total", "", stats.TotalNew(), "", "", "", stats.Duration.Round(time.Millisecond)})
	t.Render()
}

func renderSources(w io.Writer, sources []domain.CuratedSource) {
	if len(sources) == 0 {
		fmt.Fprintln(w, "no sources collected")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Type", "Platform", "Reliability", "Title", "Author", "URL"})
	for _, s := range sources {
		author := ""
		if s.Author != nil {
			author = *s.Author
		}
		t.AppendRow(table.Row{
			s.Type,
			s.Platform,
			strconv.FormatFloat(s.Reliability, 'f', 2, 64),
			domain.Preview(s.Title, titleWidth),
			author,
			s.URL,
		})
	}
	t.Render()
}
