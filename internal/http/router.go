package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/product-values/docs"
	"github.com/rogerio-castellano/product-values/internal/db"
	"github.com/rogerio-castellano/product-values/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-values/internal/http/middleware"
	"github.com/rogerio-castellano/product-values/internal/http/ratelimit"
	"github.com/rogerio-castellano/product-values/internal/repo"
)

// Options carries the router's dependencies.
type Options struct {
	Products       repo.ProductRepository
	Sessions       *db.SessionManager
	AllowedOrigins []string
	// Limiter is optional; nil disables rate limiting.
	Limiter *ratelimit.Limiter
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	s := handlers.NewServer(opts.Products, opts.Sessions)

	r.Get("/", s.RootHandler)
	r.Get("/healthz", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/value", func(r chi.Router) {
		r.Use(mw.Session(opts.Sessions))

		r.Get("/", s.GetProductsHandler)
		r.Post("/", s.CreateProductHandler)
		r.Get("/{id}", s.GetProductByIDHandler)
		r.Put("/{id}", s.UpdateProductHandler)
		r.Delete("/{id}", s.DeleteProductHandler)
	})

	return r
}
