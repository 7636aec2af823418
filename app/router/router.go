package router

import (
	"net/http"
	"time"

	"happywrap-deck/app/controller"
	"happywrap-deck/logger"
	"happywrap-deck/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// exportTimeout bounds a single PDF export request
const exportTimeout = 3 * time.Minute

type Controllers struct {
	Catalog *controller.CatalogController
	Deck    *controller.DeckController
	Export  *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler. staticDir is served under /assets.
func SetupRoutes(controllers *Controllers, staticDir string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "https://*.happywrap.in"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Page-Count"},
		MaxAge:         300,
	}))

	r.Get("/ping", pingHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	assets := http.FileServer(http.Dir(staticDir))
	r.Method(http.MethodGet, "/assets/*", assets)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog/items", controllers.Catalog.ListItems)

		r.With(middleware.Timeout(exportTimeout)).Post("/export", controllers.Export.Export)

		r.Route("/decks", func(r chi.Router) {
			r.Post("/", controllers.Deck.CreateDeck)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.Deck.GetDeck)
				r.Delete("/", controllers.Deck.DeleteDeck)
				r.Put("/details", controllers.Deck.UpdateDetails)
				r.With(middleware.Timeout(exportTimeout)).Get("/export", controllers.Deck.ExportDeck)

				r.Post("/slides", controllers.Deck.AddSlide)
				r.Post("/slides/reorder", controllers.Deck.ReorderSlides)
				r.Put("/slides/{slideID}", controllers.Deck.ReplaceSlide)
				r.Delete("/slides/{slideID}", controllers.Deck.DeleteSlide)
				r.Post("/slides/{slideID}/select", controllers.Deck.SelectSlide)
				r.Get("/slides/{slideID}/preview.png", controllers.Deck.PreviewSlide)
			})
		})
	})

	return r
}
