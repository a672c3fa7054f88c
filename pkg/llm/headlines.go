package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/resumo-news/resumo/pkg/config"
	"github.com/resumo-news/resumo/pkg/domain"
)

// Outcome tells how a headline fetch ended
type Outcome string

// fetch outcomes
const (
	OutcomeOK        Outcome = "ok"        // at least one article decoded
	OutcomeEmpty     Outcome = "empty"     // valid response without usable articles
	OutcomeMalformed Outcome = "malformed" // response was not a JSON array
	OutcomeFallback  Outcome = "fallback"  // request failed, fallback article returned
)

// FallbackID is the identifier of the article returned when the fetch fails
const FallbackID = "error-1"

// Batch is the result of a single headline fetch
type Batch struct {
	Category domain.Category
	Articles []domain.Article
	Outcome  Outcome
	Rejected []Rejection
}

// Headlines fetches AI-written headlines for a category
type Headlines struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewHeadlines creates a new headline fetcher
func NewHeadlines(cfg config.LLMConfig) *Headlines {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	if cfg.Headlines <= 0 {
		cfg.Headlines = 5
	}
	if cfg.SummaryMin <= 0 || cfg.SummaryMax < cfg.SummaryMin {
		cfg.SummaryMin, cfg.SummaryMax = 700, 800
	}

	return &Headlines{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// Fetch asks the model for the latest headlines of the category. It never fails:
// a response which is not a JSON array gives an empty batch, and any request error
// gives a batch with the single fallback article. There are no retries.
func (h *Headlines) Fetch(ctx context.Context, category domain.Category) (batch Batch) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] headline fetch for %s panicked: %v", category, r)
			batch = fallbackBatch(category)
		}
	}()

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	text, err := h.complete(ctx, buildPrompt(category, h.config.Headlines, h.config.SummaryMin, h.config.SummaryMax))
	if err != nil {
		log.Printf("[ERROR] error fetching headlines for %s: %v", category, err)
		return fallbackBatch(category)
	}

	if text == "" {
		text = "[]"
	}

	dec, err := decodeHeadlines(cleanResponse(text), category)
	if err != nil {
		log.Printf("[WARN] %v, raw response: %s", err, text)
		return Batch{Category: category, Articles: []domain.Article{}, Outcome: OutcomeMalformed}
	}

	for _, rej := range dec.rejected {
		log.Printf("[WARN] rejected headline #%d for %s: %s, raw: %s", rej.Index, category, rej.Reason, rej.Raw)
	}

	outcome := OutcomeOK
	if len(dec.articles) == 0 {
		outcome = OutcomeEmpty
	}
	log.Printf("[DEBUG] fetched %d headlines for %s, rejected %d", len(dec.articles), category, len(dec.rejected))
	return Batch{Category: category, Articles: dec.articles, Outcome: outcome, Rejected: dec.rejected}
}

// complete sends the prompt and returns the raw response text
func (h *Headlines) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       h.config.Model,
		Temperature: float32(h.config.Temperature),
		MaxTokens:   h.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: h.systemMsg,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	// search augmentation is a provider tool, enabled by type name
	if h.config.SearchTool != "" {
		req.Tools = []openai.Tool{{Type: openai.ToolType(h.config.SearchTool)}}
	}

	resp, err := h.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return resp.Choices[0].Message.Content, nil
}

// FallbackArticle returns the static article shown when headlines can't be fetched
func FallbackArticle(category domain.Category) domain.Article {
	return domain.Article{
		ID:            FallbackID,
		Title:         "Não foi possível carregar as notícias agora",
		Subtitle:      "Verifique sua conexão ou tente novamente mais tarde.",
		Category:      category,
		SourceName:    "Sistema",
		Summary:       "Ocorreu um erro ao conectar com o serviço de notícias. Por favor, tente recarregar a página em alguns instantes.",
		PublishedTime: "Agora",
	}
}

func fallbackBatch(category domain.Category) Batch {
	return Batch{Category: category, Articles: []domain.Article{FallbackArticle(category)}, Outcome: OutcomeFallback}
}
