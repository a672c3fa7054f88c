package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/resumo-news/resumo/pkg/digest"
	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/pkg/view"
)

// template names
const (
	templateNav           = "nav"
	templateNewsList      = "news-list"
	templateArticleDetail = "article-detail"
	templateArticleSource = "article-source"
	templateSettingsForm  = "settings-form"
	templateSettingsSaved = "settings-saved"
	templateDigestPreview = "digest-preview"
)

// pageData is the data of a full page render
type pageData struct {
	ActivePage string
	Category   domain.Category
	Settings   domain.UserSettings
	Digest     *digest.Digest
	Version    string
	OOB        bool // always false, shared with navData by the nav template
}

// navData is the data of the category navigation, OOB set for out-of-band htmx swaps
type navData struct {
	ActivePage string
	Category   domain.Category
	OOB        bool
}

// newsListData is the data of the article list partial
type newsListData struct {
	Category domain.Category
	Articles []domain.Article
	Outcome  llm.Outcome
}

// articleDetailData is the data of the detail modal, WithSource offers the source page text
type articleDetailData struct {
	Article    domain.Article
	WithSource bool
}

// articleSourceData is the extracted source page text, Text is empty when extraction failed
type articleSourceData struct {
	URL  string
	Text string
}

// settingsFormData is the data of the settings form, Draft holds unsaved edits
type settingsFormData struct {
	Draft domain.UserSettings
}

// indexHandler renders the page shell, the article list is loaded by htmx right after
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.CategoryGeneral
	if q := r.URL.Query().Get("category"); q != "" {
		if c, err := domain.ParseCategory(q); err == nil {
			category = c
		}
	}

	data := pageData{
		ActivePage: "news",
		Category:   category,
		Settings:   s.view.Settings(),
		Version:    s.version,
	}
	if err := s.renderPage(w, "index.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
		return
	}
}

// newsHandler loads a category into the view and renders the article list
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.CategoryGeneral
	if q := r.URL.Query().Get("category"); q != "" {
		c, err := domain.ParseCategory(q)
		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "Invalid category", err)
			return
		}
		category = c
	}

	batch, err := s.view.Load(r.Context(), category)
	s.writeNews(w, r, batch, err)
}

// refreshHandler reloads the current category
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	batch, err := s.view.Refresh(r.Context())
	s.writeNews(w, r, batch, err)
}

// writeNews renders the result of a load, a stale load is dropped without swapping anything
func (s *Server) writeNews(w http.ResponseWriter, r *http.Request, batch llm.Batch, err error) {
	if errors.Is(err, view.ErrStale) {
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Failed to load news", err)
		return
	}

	if batch.Outcome == llm.OutcomeMalformed {
		log.Printf("[WARN] malformed headline response for %s, showing empty list", batch.Category)
	}

	data := newsListData{Category: batch.Category, Articles: batch.Articles, Outcome: batch.Outcome}
	if err := s.templates.ExecuteTemplate(w, templateNewsList, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render news", err)
		return
	}

	// update the active category in the navigation
	if r.Header.Get("HX-Request") == "true" {
		if err := s.templates.ExecuteTemplate(w, templateNav, navData{ActivePage: "news", Category: batch.Category, OOB: true}); err != nil {
			log.Printf("[WARN] failed to render navigation: %v", err)
		}
	}
}

// articleDetailHandler renders the detail modal of an article from the current list
func (s *Server) articleDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	article, ok := s.view.Article(id)
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Article not found", fmt.Errorf("article %q not in current list", id))
		return
	}

	data := articleDetailData{Article: article, WithSource: s.extractor != nil && article.SourceURL != ""}
	if err := s.templates.ExecuteTemplate(w, templateArticleDetail, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render article", err)
		return
	}
}

// articleSourceHandler renders the text extracted from the article source page.
// A failed extraction still renders the partial with a link to the source.
func (s *Server) articleSourceHandler(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.respondWithError(w, http.StatusNotFound, "Source extraction disabled", nil)
		return
	}

	id := r.PathValue("id")
	article, ok := s.view.Article(id)
	if !ok || article.SourceURL == "" {
		s.respondWithError(w, http.StatusNotFound, "Article source not found", fmt.Errorf("no source for article %q", id))
		return
	}

	text, err := s.extractor.Extract(r.Context(), article.SourceURL)
	if err != nil {
		log.Printf("[WARN] failed to extract source of %s: %v", id, err)
	}

	data := articleSourceData{URL: article.SourceURL, Text: text}
	if err := s.templates.ExecuteTemplate(w, templateArticleSource, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render article source", err)
		return
	}
}

// settingsFormHandler renders the settings form with the saved settings as the draft
func (s *Server) settingsFormHandler(w http.ResponseWriter, _ *http.Request) {
	s.renderSettingsForm(w, s.view.Settings())
}

// toggleCategoryHandler toggles a category in the draft posted with the form, nothing is saved
func (s *Server) toggleCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil || category == domain.CategoryGeneral {
		s.respondWithError(w, http.StatusBadRequest, "Invalid category", err)
		return
	}

	draft := parseSettingsForm(r).ToggleCategory(category)
	s.renderSettingsForm(w, draft)
}

// saveSettingsHandler saves the posted settings and renders the confirmation
func (s *Server) saveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	us := parseSettingsForm(r)
	us.WhatsAppNumber = s.view.Settings().WhatsAppNumber
	if err := s.view.SaveSettings(r.Context(), us); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	if err := s.templates.ExecuteTemplate(w, templateSettingsSaved, us); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render confirmation", err)
		return
	}
}

// digestHandler composes the daily email preview from the saved settings
func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	us := s.view.Settings()
	d, err := s.composer.Compose(r.Context(), us)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to compose digest", err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		if err := s.templates.ExecuteTemplate(w, templateDigestPreview, d); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to render digest", err)
		}
		return
	}

	data := pageData{
		ActivePage: "digest",
		Category:   domain.CategoryGeneral,
		Settings:   us,
		Digest:     &d,
		Version:    s.version,
	}
	if err := s.renderPage(w, "digest.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
		return
	}
}

// renderSettingsForm renders the settings form for a draft
func (s *Server) renderSettingsForm(w http.ResponseWriter, draft domain.UserSettings) {
	if err := s.templates.ExecuteTemplate(w, templateSettingsForm, settingsFormData{Draft: draft}); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render settings", err)
		return
	}
}

// parseSettingsForm reads the settings draft from a parsed form. Categories keep the posted order,
// unknown and repeated ones are skipped. The email time is free text, the whatsapp number is not part of the form.
func parseSettingsForm(r *http.Request) domain.UserSettings {
	us := domain.UserSettings{
		Email:                strings.TrimSpace(r.FormValue("email")),
		EmailTime:            strings.TrimSpace(r.FormValue("emailTime")),
		SubscribedCategories: []domain.Category{},
	}
	for _, v := range r.Form["categories"] {
		c, err := domain.ParseCategory(v)
		if err != nil {
			log.Printf("[DEBUG] skip posted category: %v", err)
			continue
		}
		if !us.IsSubscribed(c) {
			us.SubscribedCategories = append(us.SubscribedCategories, c)
		}
	}
	return us
}

// renderPage renders a pre-parsed page template
func (s *Server) renderPage(w http.ResponseWriter, templateName string, data any) error {
	tmpl, ok := s.pageTemplates[templateName]
	if !ok {
		return fmt.Errorf("template %s not found", templateName)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// respondWithError logs the error and sends a plain text error for htmx to show
func (s *Server) respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	if err != nil {
		log.Printf("[WARN] %s: %v", msg, err)
	}
	http.Error(w, msg, code)
}
