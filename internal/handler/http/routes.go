package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the hub router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(h.logger))
	router.Use(withLogging)

	router.Get("/version", h.getHubVersion)
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics)
	}

	// sync protocol: compressed, signed responses
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Use(h.signResponse)

		r.Get("/ping", h.ping)
		r.Get("/sync/pull", h.pull)
		r.With(h.verifySignature).Post("/sync/push", h.push)
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}

// Init builds the control router.
func (c *ControlHandler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(c.logger))
	router.Use(withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/status", c.status)
		r.Post("/sync", c.syncAll)
		r.Post("/sync/{engine}", c.syncEngine)
		r.Post("/hub/discover", c.discoverHub)
		r.Post("/lifecycle/{event}", c.lifecycle)

		r.Get("/session", c.getSession)
		r.Put("/session", c.setSession)
		r.Delete("/session", c.clearSession)

		r.Route("/records", func(r chi.Router) {
			r.Post("/delete", c.deleteRecords)
			r.Post("/{kind}", c.createRecord)
			r.Get("/{kind}", c.listRecords)
			r.Get("/{kind}/{id}", c.getRecord)
			r.Put("/{kind}/{id}", c.updateRecord)
			r.Delete("/{kind}/{id}", c.deleteRecord)
			r.Get("/{kind}/{id}/deletable", c.checkDeletable)
		})
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
