package llm

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/resumo-news/resumo/pkg/domain"
)

// defaultPublishedTime is used when the model didn't report a publication time
const defaultPublishedTime = "Recentemente"

var stripHTML = bluemonday.StrictPolicy()

// headlineItem is a single element of the model response
type headlineItem struct {
	Title         string `json:"title"`
	SourceName    string `json:"sourceName"`
	PublishedTime string `json:"publishedTime"`
	Summary       string `json:"summary"`
	SourceURL     string `json:"sourceUrl"`
}

// Rejection describes a quarantined response element
type Rejection struct {
	Index  int
	Reason string
	Raw    string
}

// decoded holds the outcome of decoding a model response
type decoded struct {
	articles []domain.Article
	rejected []Rejection
}

// cleanResponse strips markdown code fences around the JSON payload
func cleanResponse(text string) string {
	res := strings.ReplaceAll(text, "```json", "")
	res = strings.ReplaceAll(res, "```JSON", "")
	res = strings.ReplaceAll(res, "```", "")
	return strings.TrimSpace(res)
}

// decodeHeadlines parses the cleaned response as a JSON array and decodes every element
// on its own. Elements with a wrong shape are rejected instead of failing the whole batch.
func decodeHeadlines(text string, category domain.Category) (decoded, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return decoded{}, fmt.Errorf("failed to parse json array response: %w", err)
	}

	res := decoded{articles: make([]domain.Article, 0, len(raw))}
	for i, elem := range raw {
		item, err := decodeItem(elem)
		if err != nil {
			res.rejected = append(res.rejected, Rejection{Index: i, Reason: err.Error(), Raw: string(elem)})
			continue
		}
		res.articles = append(res.articles, toArticle(item, category))
	}
	return res, nil
}

// decodeItem decodes one element strictly: it must be an object with string fields,
// and title and summary must be present
func decodeItem(elem json.RawMessage) (headlineItem, error) {
	if strings.TrimSpace(string(elem)) == "null" {
		return headlineItem{}, fmt.Errorf("invalid item: null")
	}
	var item headlineItem
	if err := json.Unmarshal(elem, &item); err != nil {
		return headlineItem{}, fmt.Errorf("invalid item: %w", err)
	}

	item.Title = plainText(item.Title)
	item.SourceName = plainText(item.SourceName)
	item.PublishedTime = plainText(item.PublishedTime)
	item.Summary = plainText(item.Summary)
	item.SourceURL = sourceLink(item.SourceURL)

	if item.Title == "" {
		return headlineItem{}, fmt.Errorf("missing title")
	}
	if item.Summary == "" {
		return headlineItem{}, fmt.Errorf("missing summary")
	}
	return item, nil
}

// plainText drops any markup from a model-provided field, the sanitizer escapes entities so they are unescaped back
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripHTML.Sanitize(s)))
}

// sourceLink keeps only absolute http(s) links, anything else is dropped
func sourceLink(s string) string {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

func toArticle(item headlineItem, category domain.Category) domain.Article {
	published := item.PublishedTime
	if published == "" {
		published = defaultPublishedTime
	}
	return domain.Article{
		ID:            uuid.NewString(),
		Title:         item.Title,
		SourceName:    item.SourceName,
		PublishedTime: published,
		Summary:       item.Summary,
		SourceURL:     item.SourceURL,
		Category:      category,
	}
}
