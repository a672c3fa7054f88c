package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/resumo-news/resumo/pkg/config"
	"github.com/resumo-news/resumo/pkg/digest"
	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/pkg/share"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/news_view.go -pkg mocks -skip-ensure -fmt goimports . NewsView
//go:generate moq -out mocks/headline_fetcher.go -pkg mocks -skip-ensure -fmt goimports . HeadlineFetcher
//go:generate moq -out mocks/digest_composer.go -pkg mocks -skip-ensure -fmt goimports . DigestComposer
//go:generate moq -out mocks/content_extractor.go -pkg mocks -skip-ensure -fmt goimports . ContentExtractor

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// page templates, each one is parsed together with the base layout and components
var pageNames = []string{"index.html", "digest.html"}

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	view      NewsView
	fetcher   HeadlineFetcher
	composer  DigestComposer
	extractor ContentExtractor // nil when source extraction is disabled
	version   string
	debug     bool

	templates     *template.Template            // components, rendered as partials
	pageTemplates map[string]*template.Template // full pages

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// NewsView is the news view state shared by all clients
type NewsView interface {
	Load(ctx context.Context, category domain.Category) (llm.Batch, error)
	Refresh(ctx context.Context) (llm.Batch, error)
	Snapshot() domain.ViewState
	Article(id string) (domain.Article, bool)
	Settings() domain.UserSettings
	SaveSettings(ctx context.Context, us domain.UserSettings) error
}

// HeadlineFetcher makes a fresh headline fetch without touching the view state
type HeadlineFetcher interface {
	Fetch(ctx context.Context, category domain.Category) llm.Batch
}

// DigestComposer builds the daily email preview
type DigestComposer interface {
	Compose(ctx context.Context, us domain.UserSettings) (digest.Digest, error)
}

// ContentExtractor gets the main text of an article source page
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance
func New(cfg ConfigProvider, view NewsView, fetcher HeadlineFetcher, composer DigestComposer, extractor ContentExtractor,
	version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		view:      view,
		fetcher:   fetcher,
		composer:  composer,
		extractor: extractor,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.templates, s.pageTemplates = mustParseTemplates()

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("resumo", "resumo-news", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// html pages and htmx partials
	s.router.HandleFunc("GET /{$}", s.indexHandler)
	s.router.HandleFunc("GET /news", s.newsHandler)
	s.router.HandleFunc("POST /news/refresh", s.refreshHandler)
	s.router.HandleFunc("GET /articles/{id}", s.articleDetailHandler)
	s.router.HandleFunc("GET /articles/{id}/source", s.articleSourceHandler)
	s.router.HandleFunc("GET /settings", s.settingsFormHandler)
	s.router.HandleFunc("POST /settings", s.saveSettingsHandler)
	s.router.HandleFunc("POST /settings/toggle/{category}", s.toggleCategoryHandler)
	s.router.HandleFunc("GET /digest", s.digestHandler)

	// feeds
	s.router.HandleFunc("GET /rss/{category}", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /state", s.stateHandler)
		r.HandleFunc("GET /headlines/{category}", s.headlinesHandler)
		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.putSettingsHandler)
		r.HandleFunc("GET /digest", s.apiDigestHandler)
	})

	// static assets
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("[ERROR] can't load static assets: %v", err)
		return
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// templateFuncs are helpers available in all templates
var templateFuncs = template.FuncMap{
	"copyText":     share.CopyText,
	"charCount":    utf8.RuneCountInString,
	"subscribable": domain.Subscribable,
	"primaryNav":   domain.PrimaryNav,
	"secondaryNav": domain.SecondaryNav,
	"whatsAppURL": func(a domain.Article) template.URL {
		return template.URL(share.WhatsAppURL(a)) //nolint:gosec // built and fully escaped by share
	},
	"mailtoURL": func(a domain.Article) template.URL {
		return template.URL(share.MailtoURL(a)) //nolint:gosec // built and fully escaped by share
	},
}

// mustParseTemplates parses components and pages from the embedded templates.
// Templates are part of the binary, so a parsing error is a programming error.
func mustParseTemplates() (components *template.Template, pages map[string]*template.Template) {
	components = template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/components/*.html"))

	pages = make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl := template.Must(components.Clone())
		template.Must(tmpl.ParseFS(templatesFS, "templates/base.html", "templates/"+name))
		pages[name] = tmpl
	}
	return components, pages
}
