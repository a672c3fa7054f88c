// Package digest composes the daily email preview from the subscribed categories.
// Nothing is sent, the composed digest is only shown to the user.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/resumo-news/resumo/pkg/config"
	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/pkg/share"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Subject is the subject line of the daily email
const Subject = "Resumo Diário"

// Fetcher fetches headlines for a category
type Fetcher interface {
	Fetch(ctx context.Context, category domain.Category) llm.Batch
}

// Section is the part of the digest with the headlines of one category
type Section struct {
	Category domain.Category  `json:"category"`
	Articles []domain.Article `json:"articles"`
	Outcome  llm.Outcome      `json:"outcome"`
}

// Digest is the composed would-be email
type Digest struct {
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	SendAt      time.Time `json:"sendAt"` // zero if the email time can't be parsed
	TimeZone    string    `json:"timeZone"`
	Sections    []Section `json:"sections"`
	Body        string    `json:"body"`
	WhatsAppURL string    `json:"whatsAppUrl,omitempty"` // empty without a phone number
}

// Composer builds digests, fetching subscribed categories concurrently
type Composer struct {
	fetcher       Fetcher
	maxConcurrent int
	timeout       time.Duration // zero means no compose deadline
	loc           *time.Location
	now           func() time.Time
}

// NewComposer makes a composer, the time zone is resolved once
func NewComposer(fetcher Fetcher, cfg config.DigestConfig) (*Composer, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = "America/Sao_Paulo"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Composer{fetcher: fetcher, maxConcurrent: maxConcurrent, timeout: cfg.Timeout, loc: loc, now: time.Now}, nil
}

// Compose fetches every subscribed category and renders the digest.
// Sections keep the category declaration order regardless of completion order.
// Categories still in flight at the compose deadline end up with the fallback article,
// only cancellation of the caller's context is an error.
func (c *Composer) Compose(ctx context.Context, us domain.UserSettings) (Digest, error) {
	categories := us.Subscriptions()
	sections := make([]Section, len(categories))

	fetchCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// fetches never fail, so the group only bounds concurrency
	var g errgroup.Group
	g.SetLimit(c.maxConcurrent)
	for i, cat := range categories {
		g.Go(func() error {
			if err := fetchCtx.Err(); err != nil {
				sections[i] = Section{Category: cat, Articles: []domain.Article{llm.FallbackArticle(cat)}, Outcome: llm.OutcomeFallback}
				return nil
			}
			batch := c.fetcher.Fetch(fetchCtx, cat)
			sections[i] = Section{Category: cat, Articles: batch.Articles, Outcome: batch.Outcome}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Digest{}, fmt.Errorf("compose digest: %w", err)
	}

	d := Digest{
		To:       us.Email,
		Subject:  Subject,
		TimeZone: c.loc.String(),
		Sections: sections,
	}

	sendAt, err := NextDelivery(c.now(), us.EmailTime, c.loc)
	if err != nil {
		lgr.Printf("[WARN] digest send time: %v", err)
	} else {
		d.SendAt = sendAt
	}

	d.Body = renderBody(sections)
	if us.WhatsAppNumber != "" {
		d.WhatsAppURL = share.WhatsAppToURL(us.WhatsAppNumber, whatsAppText(sections))
	}

	lgr.Printf("[DEBUG] composed digest with %d sections for %q", len(sections), us.Email)
	return d, nil
}

// NextDelivery returns the next occurrence of the HH:mm time in the given location, strictly after now
func NextDelivery(now time.Time, emailTime string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(emailTime))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid email time %q, expected HH:mm", emailTime)
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, t.Hour(), t.Minute(), 0, 0, loc)
	}
	return next, nil
}

// renderBody builds the plain text email body, one block per category
func renderBody(sections []Section) string {
	var sb strings.Builder
	sb.WriteString(Subject + "\n")
	for _, s := range sections {
		sb.WriteString("\n== " + s.Category.Label() + " ==\n")
		if len(s.Articles) == 0 {
			sb.WriteString("\nNenhuma notícia encontrada nesta categoria.\n")
			continue
		}
		for _, a := range s.Articles {
			sb.WriteString("\n" + share.CopyText(a) + "\n")
		}
	}
	sb.WriteString("\nLeia mais no Resumo News.\n")
	return sb.String()
}

// whatsAppText is the short version of the digest with titles only
func whatsAppText(sections []Section) string {
	var sb strings.Builder
	sb.WriteString("*" + Subject + "*\n")
	for _, s := range sections {
		if len(s.Articles) == 0 {
			continue
		}
		sb.WriteString("\n_" + s.Category.Label() + "_\n")
		for _, a := range s.Articles {
			sb.WriteString("- " + a.DisplayTitle() + "\n")
		}
	}
	sb.WriteString("\n_Via Resumo News_")
	return sb.String()
}
