package wire

import (
	"tasktakr/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /api/auth/register - Create an account (public)
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Exchange credentials for a token (public)
	r.Post("/api/auth/login", authHandler.Login)
}
