package site

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Page markup is assembled with the package's own escaper instead of
// html/template: the escaping contract is fixed (five characters, apostrophe
// as a numeric entity, defensively applied even to already-restricted slugs)
// and the output must be byte-identical across builds.

func writePageHead(b *strings.Builder, pageTitle string) {
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(b, "  <title>%s</title>\n", EscapeHTML(pageTitle))
	b.WriteString("  <link rel=\"stylesheet\" href=\"style.css\">\n")
	b.WriteString("  <link rel=\"alternate\" type=\"application/rss+xml\" href=\"feed.xml\">\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
}

func writePageFoot(b *strings.Builder) {
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
}

// renderIndexPage builds index.html from the sorted post summaries.
func renderIndexPage(site config.SiteConfig, posts []PostSummary) []byte {
	var b strings.Builder
	writePageHead(&b, site.Title)

	b.WriteString("<header>\n")
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", EscapeHTML(site.Title))
	if site.Description != "" {
		fmt.Fprintf(&b, "  <p>%s</p>\n", EscapeHTML(site.Description))
	}
	b.WriteString("</header>\n")

	b.WriteString("<main>\n")
	b.WriteString("  <ul class=\"posts\">\n")
	for _, p := range posts {
		fmt.Fprintf(&b, "    <li><time>%s</time> <a href=\"%s.html\">%s</a></li>\n",
			EscapeHTML(p.DateRaw), EscapeHTML(p.Slug), EscapeHTML(p.Title))
	}
	b.WriteString("  </ul>\n")
	b.WriteString("</main>\n")

	writePageFoot(&b)
	return []byte(b.String())
}

// renderPostPage builds one post page around the rendered body fragment. The
// fragment comes from the Markdown renderer and is inserted as-is; everything
// else is escaped.
func renderPostPage(site config.SiteConfig, p PostSummary, bodyHTML string) []byte {
	var b strings.Builder
	writePageHead(&b, p.Title+" - "+site.Title)

	b.WriteString("<header>\n")
	fmt.Fprintf(&b, "  <p><a href=\"index.html\">%s</a></p>\n", EscapeHTML(site.Title))
	b.WriteString("</header>\n")

	b.WriteString("<main>\n")
	b.WriteString("<article>\n")
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", EscapeHTML(p.Title))
	fmt.Fprintf(&b, "  <time>%s</time>\n", EscapeHTML(p.DateRaw))
	b.WriteString(bodyHTML)
	b.WriteString("</article>\n")
	b.WriteString("</main>\n")

	writePageFoot(&b)
	return []byte(b.String())
}
