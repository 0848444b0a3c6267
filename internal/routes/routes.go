package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mediavault/mediavault-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, media *handlers.MediaHandler) {
	// Auth + user routes
	r.Post("/api/v1/user/signup", auth.Signup)
	r.Post("/api/v1/user/login", auth.Login)
	r.Post("/api/v1/user/verification-token", auth.IssueVerification)
	r.Post("/api/v1/user/verify-token", auth.VerifyToken)
	r.Get("/api/v1/user", auth.ListUsers)
	r.Get("/api/v1/user/{id}", auth.GetUser)

	// Media routes
	r.Post("/api/v1/media/upload", media.Upload)
	r.Get("/api/v1/media", media.List)
	r.Get("/api/v1/media/sharableId/{sharableId}", media.GetBySharableID)
	r.Get("/api/v1/media/{id}", media.Get)
	r.Put("/api/v1/media/{id}", media.Update)
	r.Delete("/api/v1/media/{id}", media.Delete)
	r.Patch("/api/v1/media/{id}/restore", media.Restore)
}
