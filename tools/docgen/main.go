package main

import (
	"bytes"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Flyrell/hourglass/internal/locale"
	"github.com/Flyrell/hourglass/internal/parsing"
)

// NavItem is a single sidebar navigation link.
type NavItem struct {
	Title string
	Path  string
}

// PageData is the template data for rendering a reference page.
type PageData struct {
	Title   string
	Sidebar template.HTML
	Content template.HTML
}

// exampleInputs are shown on every culture page with how they read.
var exampleInputs = []string{
	"10m",
	"1h 30m",
	"1:30:00",
	"5pm",
	"at 5:00",
	"noon",
	"tomorrow",
	"tomorrow at 9am",
	"friday",
	"friday after next",
	"tuesday next week",
	"the 15th",
	"03/04",
	"03/04/2025",
	"march 2025",
	"christmas",
	"new year's eve at midnight",
}

// exampleStart is the reference start for the "ends" column, a Monday morning.
var exampleStart = time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} - hourglass</title>
</head>
<body>
<aside>{{.Sidebar}}</aside>
<main>{{.Content}}</main>
</body>
</html>
`

func main() {
	outDir := flag.String("out", "docs/locales", "directory the reference pages are written to")
	flag.Parse()

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		fatal("parsing template: %v", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	var pages []NavItem
	for _, name := range locale.Names() {
		pages = append(pages, NavItem{Title: name, Path: name + ".html"})
	}

	ps := parsing.NewParser()
	for _, page := range pages {
		l, err := locale.Lookup(page.Title)
		if err != nil {
			fatal("loading %s: %v", page.Title, err)
		}

		mdData, err := cultureMarkdown(ps, l)
		if err != nil {
			fatal("building %s: %v", page.Title, err)
		}

		var contentBuf bytes.Buffer
		if err := md.Convert([]byte(mdData), &contentBuf); err != nil {
			fatal("converting %s: %v", page.Title, err)
		}

		data := PageData{
			Title:   page.Title,
			Sidebar: template.HTML(renderSidebar(pages, page.Path)),
			Content: template.HTML(contentBuf.String()),
		}

		var pageBuf bytes.Buffer
		if err := tmpl.Execute(&pageBuf, data); err != nil {
			fatal("executing template for %s: %v", page.Path, err)
		}

		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			fatal("creating directory %s: %v", *outDir, err)
		}

		outFile := filepath.Join(*outDir, page.Path)
		if err := os.WriteFile(outFile, pageBuf.Bytes(), 0o644); err != nil {
			fatal("writing %s: %v", outFile, err)
		}

		fmt.Printf("  generated %s\n", outFile)
	}

	fmt.Printf("\n  %d pages generated\n", len(pages))
}

// cultureMarkdown describes how a culture reads timer inputs: its date
// ordering, a table of sample inputs and every date/time pattern in the
// order it is tried.
func cultureMarkdown(ps *parsing.Parser, l *locale.Locale) (string, error) {
	var b strings.Builder

	order := "day-first"
	switch {
	case l.IsYearFirst():
		order = "year-first"
	case l.IsMonthFirst():
		order = "month-first"
	}
	clock := "12-hour"
	if l.Prefer24Hour() {
		clock = "24-hour"
	}

	fmt.Fprintf(&b, "# %s\n\n", l.Name())
	fmt.Fprintf(&b, "Short date pattern `%s` (%s), %s clock.\n\n", l.ShortDatePattern(), order, clock)

	fmt.Fprintf(&b, "## Examples\n\n")
	fmt.Fprintf(&b, "Ends are relative to %s.\n\n", exampleStart.Format("Monday 2006-01-02 15:04"))
	b.WriteString("| input | kind | reads as | ends |\n|---|---|---|---|\n")
	for _, input := range exampleInputs {
		token, err := ps.Parse(input, l)
		if err != nil {
			fmt.Fprintf(&b, "| `%s` | - | not understood | - |\n", input)
			continue
		}
		ends := "-"
		if end, ok := token.TryEndTime(exampleStart); ok {
			ends = end.Format("Mon 2006-01-02 15:04:05")
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", input, token.Kind(), token.Format(l), ends)
	}

	cands, err := parsing.Candidates(l)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "\n## Date and time patterns\n\n")
	fmt.Fprintf(&b, "%d patterns, tried top to bottom; the first one that matches and validates wins.\n\n", len(cands))
	b.WriteString("| # | date | time | pattern |\n|---|---|---|---|\n")
	for i, c := range cands {
		fmt.Fprintf(&b, "| %d | %s | %s | `%s` |\n", i+1, c.DateParser, c.TimeParser, escapeCell(c.Pattern))
	}

	return b.String(), nil
}

// escapeCell keeps regex alternations from splitting table cells.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// renderSidebar generates the sidebar nav HTML.
func renderSidebar(pages []NavItem, currentPath string) string {
	var b strings.Builder

	b.WriteString(`<nav class="sidebar-nav">` + "\n")
	b.WriteString(`  <div class="nav-group-label">Cultures</div>` + "\n")
	for _, item := range pages {
		activeClass := ""
		if item.Path == currentPath {
			activeClass = " active"
		}
		b.WriteString(fmt.Sprintf(`  <a href="%s" class="nav-link%s">%s</a>`+"\n", item.Path, activeClass, template.HTMLEscapeString(item.Title)))
	}
	b.WriteString("</nav>\n")
	return b.String()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "docgen: "+format+"\n", args...)
	os.Exit(1)
}
