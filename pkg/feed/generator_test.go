package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumo-news/resumo/pkg/domain"
)

func newTestGenerator(baseURL string) *Generator {
	g := NewGenerator(baseURL)
	g.now = func() time.Time { return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC) }
	return g
}

func testArticles() []domain.Article {
	return []domain.Article{
		{
			ID:            "3f1c2a8e-0000-4000-8000-000000000001",
			Title:         "Congresso aprova reforma",
			Category:      domain.CategoryPolitics,
			SourceName:    "Folha",
			PublishedTime: "Há 2 horas",
			Summary:       "O Congresso aprovou nesta segunda a reforma tributária.",
		},
		{
			ID:       "3f1c2a8e-0000-4000-8000-000000000002",
			Title:    "Senado discute orçamento.",
			Category: domain.CategoryPolitics,
			Summary:  "Senadores debateram o orçamento.",
		},
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	t.Run("category feed", func(t *testing.T) {
		rss, err := generator.GenerateRSS(testArticles(), domain.CategoryPolitics)
		require.NoError(t, err)

		// check basic structure
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Resumo News - Política</title>`)
		assert.Contains(t, rss, `<link>https://example.com/?category=politics</link>`)
		assert.Contains(t, rss, `<language>pt-BR</language>`)
		assert.Contains(t, rss, `<lastBuildDate>Mon, 10 Mar 2025 09:30:00 +0000</lastBuildDate>`)

		// check atom self link (namespace is on the link element)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://example.com/rss/politics" rel="self" type="application/rss+xml"></link>`)

		// check items
		assert.Contains(t, rss, `<title>Congresso aprova reforma.</title>`)
		assert.Contains(t, rss, `<title>Senado discute orçamento.</title>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">3f1c2a8e-0000-4000-8000-000000000001</guid>`)
		assert.Contains(t, rss, `<author>Folha</author>`)
		assert.Contains(t, rss, `<author>Redação</author>`)
		assert.Contains(t, rss, `<category>Política</category>`)
		assert.Contains(t, rss, `Há 2 horas - O Congresso aprovou`)
	})

	t.Run("empty articles", func(t *testing.T) {
		rss, err := generator.GenerateRSS([]domain.Article{}, domain.CategoryTech)
		require.NoError(t, err)

		assert.Contains(t, rss, `<channel>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("generator with trailing slash in base URL", func(t *testing.T) {
		gen := newTestGenerator("https://example.com/")
		rss, err := gen.GenerateRSS(testArticles()[:1], domain.CategoryGeneral)
		require.NoError(t, err)

		assert.Contains(t, rss, `href="https://example.com/rss/general"`)
		assert.NotContains(t, rss, `https://example.com//`)
	})
}

func TestGenerator_ParsedByFeedReader(t *testing.T) {
	generator := newTestGenerator("https://example.com")
	rss, err := generator.GenerateRSS(testArticles(), domain.CategoryPolitics)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(rss)
	require.NoError(t, err)

	assert.Equal(t, "rss", parsed.FeedType)
	assert.Equal(t, "Resumo News - Política", parsed.Title)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Congresso aprova reforma.", parsed.Items[0].Title)
	assert.Equal(t, "3f1c2a8e-0000-4000-8000-000000000001", parsed.Items[0].GUID)
	assert.Equal(t, "https://example.com/?category=politics#3f1c2a8e-0000-4000-8000-000000000001", parsed.Items[0].Link)
	assert.Equal(t, []string{"Política"}, parsed.Items[0].Categories)
	require.NotNil(t, parsed.Items[0].PublishedParsed)
	assert.True(t, parsed.Items[0].PublishedParsed.Equal(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Senadores debateram o orçamento.", parsed.Items[1].Description)
}

func TestGenerator_convertToRSSItem(t *testing.T) {
	generator := newTestGenerator("https://example.com")
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("source link", func(t *testing.T) {
		a := domain.Article{ID: "id1", Title: "Título", Category: domain.CategoryTech, SourceURL: "https://news.example.org/a", Summary: "S"}
		item := generator.convertToRSSItem(a, now)
		assert.Equal(t, "Título.", item.Title)
		assert.Equal(t, "https://news.example.org/a", item.Link)
		assert.Equal(t, "id1", item.GUID.Value)
		assert.Equal(t, "Redação", item.Author)
		assert.Equal(t, "S", item.Description)
		assert.Equal(t, []string{"Tecnologia"}, item.Categories)
		require.NotNil(t, item.Source)
		assert.Equal(t, RSSSource{Name: "Redação", URL: "https://news.example.org/a"}, *item.Source)
	})

	t.Run("fallback link", func(t *testing.T) {
		a := domain.Article{ID: "id2", Title: "T", Category: domain.CategoryWorld}
		item := generator.convertToRSSItem(a, now)
		assert.Equal(t, "https://example.com/?category=world#id2", item.Link)
		assert.Nil(t, item.Source)
	})
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	opml, err := generator.GenerateOPML(domain.Categories())
	require.NoError(t, err)

	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Resumo News</title>`)
	assert.Contains(t, opml, `text="Principais"`)
	assert.Contains(t, opml, `xmlUrl="https://example.com/rss/general"`)
	assert.Contains(t, opml, `htmlUrl="https://example.com/?category=tech"`)
	assert.Contains(t, opml, `text="Famosos &amp; Fofoca"`)
	assert.Equal(t, len(domain.Categories()), strings.Count(opml, "<outline "))
}

func TestRSSXMLStructure(t *testing.T) {
	generator := newTestGenerator("https://example.com")

	articles := []domain.Article{{
		ID:         "x",
		Title:      "Test & Article <with> Special Characters",
		Category:   domain.CategoryGeneral,
		SourceName: "Author & Co.",
		Summary:    "Summary with <html> tags",
	}}

	rss, err := generator.GenerateRSS(articles, domain.CategoryGeneral)
	require.NoError(t, err)

	// XML special characters should be escaped
	assert.Contains(t, rss, "Test &amp; Article &lt;with&gt; Special Characters.")
	assert.Contains(t, rss, "Author &amp; Co.")
	assert.Contains(t, rss, "Summary with &lt;html&gt; tags")

	assert.Regexp(t, `(?s)<rss[^>]*>.*<channel>.*</channel>.*</rss>`, rss)
}
