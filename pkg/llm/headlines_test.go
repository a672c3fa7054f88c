package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumo-news/resumo/pkg/config"
	"github.com/resumo-news/resumo/pkg/domain"
)

// newTestServer returns a server responding with the given content as the first completion choice
func newTestServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     5 * time.Second,
		Headlines:   5,
		SummaryMin:  700,
		SummaryMax:  800,
	}
}

func TestHeadlines_Fetch(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "```json\n" + `[
  {"title": "Congresso aprova reforma", "sourceName": "G1", "publishedTime": "Hoje às 14:30", "summary": "O Congresso aprovou a reforma."},
  {"title": "Senado adia votação", "sourceName": "Folha", "summary": "O Senado decidiu adiar a votação."}
]` + "\n```"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.SearchTool = "google_search"
	batch := NewHeadlines(cfg).Fetch(context.Background(), domain.CategoryPolitics)

	assert.Equal(t, OutcomeOK, batch.Outcome)
	assert.Empty(t, batch.Rejected)
	require.Len(t, batch.Articles, 2)

	first, second := batch.Articles[0], batch.Articles[1]
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Congresso aprova reforma", first.Title)
	assert.Equal(t, "G1", first.SourceName)
	assert.Equal(t, "Hoje às 14:30", first.PublishedTime)
	assert.Equal(t, domain.CategoryPolitics, first.Category)
	assert.Equal(t, "Recentemente", second.PublishedTime, "missing time gets placeholder")

	// verify request
	assert.Equal(t, "gemini-2.5-flash", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Busque as últimas notícias sobre Política no Brasil.")
	assert.Contains(t, gotReq.Messages[1].Content, "Liste exatamente 5 notícias")
	require.Len(t, gotReq.Tools, 1)
	assert.Equal(t, openai.ToolType("google_search"), gotReq.Tools[0].Type)
}

func TestHeadlines_Fetch_SingleItem(t *testing.T) {
	server := newTestServer(t, `[{"title":"T","sourceName":"S","publishedTime":"Hoje","summary":"X"}]`)
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryTech)
	require.Len(t, batch.Articles, 1)
	a := batch.Articles[0]
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "T", a.Title)
	assert.Equal(t, "S", a.SourceName)
	assert.Equal(t, "Hoje", a.PublishedTime)
	assert.Equal(t, "X", a.Summary)
	assert.Equal(t, domain.CategoryTech, a.Category)
}

func TestHeadlines_Fetch_FencedEqualsUnfenced(t *testing.T) {
	payload := `[{"title":"A","sourceName":"UOL","publishedTime":"Ontem 18:00","summary":"Texto A"},{"title":"B","summary":"Texto B"}]`

	fetch := func(content string) Batch {
		server := newTestServer(t, content)
		defer server.Close()
		return NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryWorld)
	}

	plain := fetch(payload)
	fenced := fetch("```json\n" + payload + "\n```")
	bare := fetch("```\n" + payload + "\n```")

	stripIDs := func(b Batch) []domain.Article {
		res := make([]domain.Article, len(b.Articles))
		for i, a := range b.Articles {
			a.ID = ""
			res[i] = a
		}
		return res
	}
	require.Len(t, plain.Articles, 2)
	assert.Equal(t, stripIDs(plain), stripIDs(fenced))
	assert.Equal(t, stripIDs(plain), stripIDs(bare))
}

func TestHeadlines_Fetch_NotJSON(t *testing.T) {
	server := newTestServer(t, "not json")
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategorySports)
	assert.NotNil(t, batch.Articles)
	assert.Empty(t, batch.Articles)
	assert.Equal(t, OutcomeMalformed, batch.Outcome)
}

func TestHeadlines_Fetch_EmptyContent(t *testing.T) {
	server := newTestServer(t, "")
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategorySports)
	assert.Empty(t, batch.Articles)
	assert.Equal(t, OutcomeEmpty, batch.Outcome)
}

func TestHeadlines_Fetch_QuarantinesMalformedItems(t *testing.T) {
	server := newTestServer(t, `[
		{"title":"Válida","sourceName":"CNN","summary":"Resumo válido"},
		{"title":5,"summary":"número no título"},
		"apenas texto",
		null,
		{"title":"","summary":"sem título"},
		{"title":"Sem resumo"}
	]`)
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryEconomy)
	assert.Equal(t, OutcomeOK, batch.Outcome)
	require.Len(t, batch.Articles, 1)
	assert.Equal(t, "Válida", batch.Articles[0].Title)

	require.Len(t, batch.Rejected, 5)
	indexes := make([]int, 0, len(batch.Rejected))
	for _, r := range batch.Rejected {
		indexes = append(indexes, r.Index)
		assert.NotEmpty(t, r.Reason)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, indexes)
}

func TestHeadlines_Fetch_AllItemsRejected(t *testing.T) {
	server := newTestServer(t, `[{"foo":"bar"}]`)
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryEconomy)
	assert.Empty(t, batch.Articles)
	assert.Equal(t, OutcomeEmpty, batch.Outcome)
	assert.Len(t, batch.Rejected, 1)
}

func TestHeadlines_Fetch_StripsMarkup(t *testing.T) {
	server := newTestServer(t, `[{"title":"<b>Lula</b> & Congresso","sourceName":"<i>G1</i>","summary":"<script>alert(1)</script>Texto \"limpo\""}]`)
	defer server.Close()

	batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryPolitics)
	require.Len(t, batch.Articles, 1)
	assert.Equal(t, "Lula & Congresso", batch.Articles[0].Title)
	assert.Equal(t, "G1", batch.Articles[0].SourceName)
	assert.Equal(t, `Texto "limpo"`, batch.Articles[0].Summary)
}

func TestHeadlines_Fetch_Fallback(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
		}))
		defer server.Close()

		batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryCelebrity)
		assertFallback(t, batch, domain.CategoryCelebrity)
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		batch := NewHeadlines(testConfig(server.URL)).Fetch(context.Background(), domain.CategoryReligion)
		assertFallback(t, batch, domain.CategoryReligion)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := newTestServer(t, "[]")
		url := server.URL
		server.Close()

		batch := NewHeadlines(testConfig(url)).Fetch(context.Background(), domain.CategoryGeneral)
		assertFallback(t, batch, domain.CategoryGeneral)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.Timeout = 50 * time.Millisecond
		start := time.Now()
		batch := NewHeadlines(cfg).Fetch(context.Background(), domain.CategoryTech)
		assertFallback(t, batch, domain.CategoryTech)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("canceled context", func(t *testing.T) {
		server := newTestServer(t, "[]")
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		batch := NewHeadlines(testConfig(server.URL)).Fetch(ctx, domain.CategoryWorld)
		assertFallback(t, batch, domain.CategoryWorld)
	})
}

func assertFallback(t *testing.T, batch Batch, category domain.Category) {
	t.Helper()
	assert.Equal(t, OutcomeFallback, batch.Outcome)
	require.Len(t, batch.Articles, 1)
	a := batch.Articles[0]
	assert.Equal(t, FallbackID, a.ID)
	assert.NotEmpty(t, a.Title)
	assert.NotEmpty(t, a.Summary)
	assert.Equal(t, category, a.Category)
	assert.Equal(t, "Sistema", a.SourceName)
	assert.Equal(t, "Agora", a.PublishedTime)
}

func TestNewHeadlines_Defaults(t *testing.T) {
	h := NewHeadlines(config.LLMConfig{Model: "m", SummaryMin: 900, SummaryMax: 100})
	assert.Equal(t, 5, h.config.Headlines)
	assert.Equal(t, 700, h.config.SummaryMin)
	assert.Equal(t, 800, h.config.SummaryMax)
	assert.Equal(t, defaultSystemPrompt, h.systemMsg)

	h = NewHeadlines(config.LLMConfig{Model: "m", SystemPrompt: "custom"})
	assert.Equal(t, "custom", h.systemMsg)
}
