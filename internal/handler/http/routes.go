package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.healthz)

	router.Group(func(r chi.Router) {
		r.Use(h.withTraceID, h.withLogging)
		r.Post(h.path, h.webhook)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
