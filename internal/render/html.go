package render

import (
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="cs">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.5; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: .3rem; }
h2 { margin-top: 2rem; }
a { color: #0645ad; }
hr { border: 0; border-top: 1px solid #ccc; margin: 2rem 0; }
ol, ul { padding-left: 1.4rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

var (
	boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	// inline() escapes first, so autolink angle brackets arrive as
	// entities and ampersands inside the URL as &amp;.
	linkRe = regexp.MustCompile(`&lt;(https?://(?:[^&\s]|&amp;)+?)&gt;`)
	emRe   = regexp.MustCompile(`(^|\s)_([^_]+)_`)
)

// HTML converts the briefing Markdown into a static page. The
// converter covers exactly the subset the Markdown renderer emits:
// headings, bold, emphasis, list items, rules and autolinks.
func HTML(title, md string) (string, error) {
	var body strings.Builder
	var listOpen string

	closeList := func() {
		if listOpen != "" {
			body.WriteString("</" + listOpen + ">\n")
			listOpen = ""
		}
	}

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			closeList()
		case strings.HasPrefix(trimmed, "# "):
			closeList()
			body.WriteString("<h1>" + inline(trimmed[2:]) + "</h1>\n")
		case strings.HasPrefix(trimmed, "## "):
			closeList()
			body.WriteString("<h2>" + inline(trimmed[3:]) + "</h2>\n")
		case trimmed == "---":
			closeList()
			body.WriteString("<hr>\n")
		case strings.HasPrefix(trimmed, "- "):
			if listOpen != "ul" {
				closeList()
				body.WriteString("<ul>\n")
				listOpen = "ul"
			}
			body.WriteString("<li>" + inline(trimmed[2:]) + "</li>\n")
		case numberedRe.MatchString(trimmed):
			if listOpen != "ol" {
				closeList()
				body.WriteString("<ol>\n")
				listOpen = "ol"
			}
			body.WriteString("<li>" + inline(numberedRe.ReplaceAllString(trimmed, "")) + "</li>\n")
		default:
			closeList()
			body.WriteString("<p>" + inline(trimmed) + "</p>\n")
		}
	}
	closeList()

	var page strings.Builder
	err := pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

var numberedRe = regexp.MustCompile(`^\d+\.\s+`)

func inline(s string) string {
	s = html.EscapeString(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = emRe.ReplaceAllString(s, "$1<em>$2</em>")
	s = linkRe.ReplaceAllString(s, `<a href="$1">$1</a>`)
	return s
}

// Write persists the Markdown and HTML files to dir, creating it if
// needed. Called only after the whole pipeline finished in memory, so a
// failed run never leaves a partial document behind.
func Write(dir, weekLabel, md, page string) (mdPath, htmlPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}
	mdPath = filepath.Join(dir, weekLabel+".md")
	htmlPath = filepath.Join(dir, weekLabel+".html")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
		return "", "", err
	}
	return mdPath, htmlPath, nil
}
