// Package feed renders fetched headlines as RSS 2.0 and lists the category feeds as OPML.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/resumo-news/resumo/pkg/domain"
)

// Generator creates RSS feeds from articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from the articles of a category
func (g *Generator) GenerateRSS(articles []domain.Article, category domain.Category) (string, error) {
	now := g.now()
	selfLink := fmt.Sprintf("%s/rss/%s", g.baseURL, category)

	// convert articles to RSS items
	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a, now))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Resumo News - " + category.Label(),
			Link:          fmt.Sprintf("%s/?category=%s", g.baseURL, category),
			Description:   fmt.Sprintf("Resumo das últimas notícias: %s", category.Label()),
			Language:      "pt-BR",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: now.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts an article to an RSS item, the published time is relative text
// so the build time is used as pubDate
func (g *Generator) convertToRSSItem(a domain.Article, now time.Time) *RSSItem {
	link := a.SourceURL
	if link == "" {
		link = fmt.Sprintf("%s/?category=%s#%s", g.baseURL, a.Category, a.ID)
	}

	desc := a.Summary
	if a.PublishedTime != "" {
		desc = a.PublishedTime + " - " + desc
	}

	item := &RSSItem{
		Title:       a.DisplayTitle(),
		Link:        link,
		GUID:        RSSGUID{Value: a.ID, IsPermaLink: "false"},
		Description: desc,
		Author:      a.DisplaySource(),
		PubDate:     now.Format(time.RFC1123Z),
		Categories:  []string{a.Category.Label()},
	}
	if a.SourceURL != "" {
		item.Source = &RSSSource{Name: a.DisplaySource(), URL: a.SourceURL}
	}
	return item
}

// GenerateOPML creates an OPML file listing the RSS feed of every category
func (g *Generator) GenerateOPML(categories []domain.Category) (string, error) {
	outlines := make([]OPMLOutline, 0, len(categories))
	for _, c := range categories {
		outlines = append(outlines, OPMLOutline{
			Text:    c.Label(),
			Title:   "Resumo News - " + c.Label(),
			Type:    "rss",
			XMLURL:  fmt.Sprintf("%s/rss/%s", g.baseURL, c),
			HTMLURL: fmt.Sprintf("%s/?category=%s", g.baseURL, c),
		})
	}

	doc := OPML{
		Version: "2.0",
		Head: OPMLHead{
			Title:       "Resumo News",
			DateCreated: g.now().Format(time.RFC1123Z),
		},
		Body: OPMLBody{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
