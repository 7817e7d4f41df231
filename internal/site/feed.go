package site

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// renderFeed produces the RSS 2.0 document for the sorted post summaries.
//
// The document is assembled by hand rather than through encoding/xml: the
// feed contract requires apostrophes as &apos;, rejects illegal XML 1.0 code
// points as build errors, and must be byte-identical across builds of the
// same inputs. All channel and item text goes through EscapeXML.
func renderFeed(site config.SiteConfig, posts []PostSummary) ([]byte, error) {
	var b strings.Builder

	title, err := EscapeXML(site.Title)
	if err != nil {
		return nil, fmt.Errorf("feed title: %w", err)
	}
	link, err := EscapeXML(site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("feed link: %w", err)
	}
	desc, err := EscapeXML(site.Description)
	if err != nil {
		return nil, fmt.Errorf("feed description: %w", err)
	}

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss version=\"2.0\">\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", title)
	fmt.Fprintf(&b, "    <link>%s</link>\n", link)
	fmt.Fprintf(&b, "    <description>%s</description>\n", desc)
	if len(posts) > 0 {
		// Posts are sorted newest first; the newest post's date is the build date.
		fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", posts[0].Date.RFC822())
	}

	for _, p := range posts {
		itemTitle, err := EscapeXML(p.Title)
		if err != nil {
			return nil, fmt.Errorf("post %s title: %w", p.Slug, err)
		}
		itemURL, err := EscapeXML(postURL(site.BaseURL, p.Slug))
		if err != nil {
			return nil, fmt.Errorf("post %s link: %w", p.Slug, err)
		}

		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", itemTitle)
		fmt.Fprintf(&b, "      <link>%s</link>\n", itemURL)
		fmt.Fprintf(&b, "      <guid isPermaLink=\"true\">%s</guid>\n", itemURL)
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", p.Date.RFC822())
		if p.Description != "" {
			itemDesc, err := EscapeXML(p.Description)
			if err != nil {
				return nil, fmt.Errorf("post %s description: %w", p.Slug, err)
			}
			fmt.Fprintf(&b, "      <description>%s</description>\n", itemDesc)
		}
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return []byte(b.String()), nil
}

// postURL joins the site base URL and a slug into the post's permalink.
func postURL(baseURL, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + slug + ".html"
}
