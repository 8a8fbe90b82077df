// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
)

const apiPrefix = "/api/v1"

// Init builds the router with the full middleware pipeline. Middlewares are
// listed outermost first: correlation id and latency headers wrap everything,
// so they are present on error and panic responses too.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withRequestID,
		withProcessTime,
		withLogging,
		withRecover,
		h.withCORS(),
		withGZip,
	)

	router.Get("/", h.welcome)
	router.Get("/health", h.health)

	router.Route(apiPrefix, func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)

			r.Post("/users", h.createUser)
			r.Get("/users", h.listUsers)
			r.Get("/users/{id}", h.getUser)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.me)
			r.Put("/users/{id}", h.updateUser)
			r.Delete("/users/{id}", h.deleteUser)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
