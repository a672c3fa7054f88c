package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
)

// headlinesResponse is the api view of a headline fetch
type headlinesResponse struct {
	Category domain.Category  `json:"category"`
	Outcome  llm.Outcome      `json:"outcome"`
	Rejected int              `json:"rejected"`
	Articles []domain.Article `json:"articles"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.view.Snapshot()
	status := map[string]any{
		"status":     "ok",
		"version":    s.version,
		"time":       time.Now().UTC(),
		"state":      snap.State,
		"category":   snap.Category,
		"generation": snap.Generation,
	}
	renderJSON(w, r, http.StatusOK, status)
}

// stateHandler returns the current view state with its articles
func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.view.Snapshot())
}

// headlinesHandler makes a fresh fetch for the category, the view state is not changed
func (s *Server) headlinesHandler(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	batch := s.fetcher.Fetch(r.Context(), category)
	articles := batch.Articles
	if articles == nil {
		articles = []domain.Article{}
	}
	renderJSON(w, r, http.StatusOK, headlinesResponse{
		Category: category,
		Outcome:  batch.Outcome,
		Rejected: len(batch.Rejected),
		Articles: articles,
	})
}

// getSettingsHandler returns the saved settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.view.Settings())
}

// putSettingsHandler replaces the saved settings with the posted ones
func (s *Server) putSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var us domain.UserSettings
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&us); err != nil {
		renderError(w, r, fmt.Errorf("invalid settings: %w", err), http.StatusBadRequest)
		return
	}

	for _, c := range us.SubscribedCategories {
		if !c.Valid() {
			renderError(w, r, fmt.Errorf("unknown category %q", c), http.StatusBadRequest)
			return
		}
	}

	if err := s.view.SaveSettings(r.Context(), us); err != nil {
		log.Printf("[ERROR] failed to save settings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, s.view.Settings())
}

// apiDigestHandler composes the digest preview for the saved settings
func (s *Server) apiDigestHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.composer.Compose(r.Context(), s.view.Settings())
	if err != nil {
		log.Printf("[WARN] failed to compose digest: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, d)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
