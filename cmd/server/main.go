package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/aggiefind/aggiefind/internal/api"
	"github.com/aggiefind/aggiefind/internal/config"
	"github.com/aggiefind/aggiefind/internal/model"
	"github.com/aggiefind/aggiefind/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Auto-generate JWT secret if not provided.
	if cfg.JWTSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.JWTSecret = secret
		log.Println("JWT_SECRET not set; auto-generated (tokens will be invalidated on restart)")
	}

	s := store.New(cfg.DBPath)

	if cfg.AdminUser != "" && cfg.AdminPass != "" {
		if err := bootstrapAdmin(s, cfg.AdminUser, cfg.AdminPass); err != nil {
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	handler := api.LoggingMiddleware(api.NewRouter(s, cfg.JWTSecret))

	addr := ":" + cfg.Port
	fmt.Printf("AggieFind backend listening on http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// bootstrapAdmin creates the admin account from ADMIN_USER/ADMIN_PASS.
// Idempotent: an existing account with that username is left untouched.
func bootstrapAdmin(s *store.Store, username, password string) error {
	existing, err := s.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("checking for admin user: %w", err)
	}
	if existing != nil {
		log.Printf("Admin %q already exists, skipping creation", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := s.CreateUser(username, string(hash), "", "", model.RoleAdmin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	log.Printf("Created admin %q", username)
	return nil
}

// generateSecret creates a random signing key.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
