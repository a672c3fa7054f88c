package server

import (
	"log"
	"net/http"

	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/feed"
)

// rssHandler serves an RSS feed made from a fresh fetch of the category
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		http.Error(w, "Unknown category", http.StatusNotFound)
		return
	}

	batch := s.fetcher.Fetch(r.Context(), category)

	generator := feed.NewGenerator(s.config.GetFullConfig().Server.BaseURL)
	rss, err := generator.GenerateRSS(batch.Articles, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves the list of category feeds
func (s *Server) opmlHandler(w http.ResponseWriter, _ *http.Request) {
	generator := feed.NewGenerator(s.config.GetFullConfig().Server.BaseURL)
	opml, err := generator.GenerateOPML(domain.Categories())
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
