package api

import (
	"net/http"

	"github.com/aggiefind/aggiefind/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s *store.Store, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: s, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{Store: s}
	userItemsHandler := &UserItemsHandler{Store: s}
	adminHandler := &AdminHandler{Store: s}

	authMW := AuthMiddleware(jwtSecret)
	optionalAuth := OptionalAuth(jwtSecret)
	requireAdmin := RequireAdmin(s)

	// Accounts.
	mux.HandleFunc("POST /api/user/register", authHandler.Register)
	mux.HandleFunc("POST /api/user/login", authHandler.Login)

	// Public item endpoints. Creation works anonymously; a valid token makes
	// the caller the creator.
	mux.Handle("POST /api/items", optionalAuth(http.HandlerFunc(itemsHandler.Create)))
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetPhoto)
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))

	// Caller-scoped item endpoints.
	mux.Handle("GET /api/user/items", authMW(http.HandlerFunc(userItemsHandler.List)))
	mux.Handle("PUT /api/user/items/{id}", authMW(http.HandlerFunc(userItemsHandler.Update)))
	mux.Handle("DELETE /api/user/items/{id}", authMW(http.HandlerFunc(userItemsHandler.Delete)))

	// Moderation.
	mux.Handle("GET /api/admin/items", authMW(requireAdmin(http.HandlerFunc(adminHandler.List))))
	mux.Handle("PUT /api/admin/items/{id}", authMW(requireAdmin(http.HandlerFunc(adminHandler.Update))))
	mux.Handle("DELETE /api/admin/items/{id}", authMW(requireAdmin(http.HandlerFunc(adminHandler.Delete))))

	return mux
}
