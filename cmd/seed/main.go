package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/emartsoft/login-service/config"
	"github.com/emartsoft/login-service/pkg/helpers"
)

// Seeds a local admin account for development. Idempotent on email.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@emart.local"
	password := "Admin@12345"
	hash, err := helpers.NewBcryptHasher(0).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// database/sql cannot bind a []string to text[]; inline the roles.
	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, phone, password_hash, city, roles, enabled)
		VALUES ($1, $2, $3, $4, $5, '{admin,user}'::text[], true)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "Admin", email, "+10000000000", hash, "HQ").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	fmt.Printf("seeded admin account: id=%s email=%s password=%s\n", id, email, password)
}
