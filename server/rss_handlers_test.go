package server

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/server/mocks"
)

func TestServer_rssHandler(t *testing.T) {
	fetcher := &mocks.HeadlineFetcherMock{
		FetchFunc: func(_ context.Context, c domain.Category) llm.Batch {
			arts := sampleArticles()
			arts[0].SourceURL = "https://folha.example/reforma"
			return llm.Batch{Category: c, Articles: arts, Outcome: llm.OutcomeOK}
		},
	}
	v := &mocks.NewsViewMock{}
	srv := testServer(t, v, fetcher, nil)

	t.Run("feed", func(t *testing.T) {
		w := serve(srv, httptest.NewRequest("GET", "/rss/politics", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))

		f, err := gofeed.NewParser().ParseString(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, "Resumo News - Política", f.Title)
		require.Len(t, f.Items, 2)
		assert.Equal(t, "Congresso aprova reforma.", f.Items[0].Title)
		assert.Equal(t, "https://folha.example/reforma", f.Items[0].Link)
		assert.Equal(t, "http://localhost:8080/?category=politics#a2", f.Items[1].Link)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := serve(srv, httptest.NewRequest("GET", "/rss/weather", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	assert.Len(t, fetcher.FetchCalls(), 1)
	assert.Empty(t, v.LoadCalls())
}

func TestServer_rssHandler_Fallback(t *testing.T) {
	fetcher := &mocks.HeadlineFetcherMock{
		FetchFunc: func(_ context.Context, c domain.Category) llm.Batch {
			return llm.Batch{Category: c, Articles: []domain.Article{llm.FallbackArticle(c)}, Outcome: llm.OutcomeFallback}
		},
	}
	srv := testServer(t, nil, fetcher, nil)

	w := serve(srv, httptest.NewRequest("GET", "/rss/tech", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	f, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
	assert.Contains(t, f.Items[0].Title, "Não foi possível carregar as notícias agora")
}

func TestServer_opmlHandler(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	w := serve(srv, httptest.NewRequest("GET", "/opml", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/x-opml; charset=utf-8", w.Header().Get("Content-Type"))

	var doc struct {
		Outlines []struct {
			Title  string `xml:"title,attr"`
			XMLUrl string `xml:"xmlUrl,attr"`
		} `xml:"body>outline"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Outlines, len(domain.Categories()))
	assert.Equal(t, "Resumo News - Principais", doc.Outlines[0].Title)
	assert.Equal(t, "http://localhost:8080/rss/general", doc.Outlines[0].XMLUrl)
}
