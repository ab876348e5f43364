package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/book-catalog-api/config"
	"github.com/oksasatya/book-catalog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo Reader"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	books := []struct {
		title, author, isbn, published, description string
	}{
		{"Dune", "Frank Herbert", "9780441013593", "1965-08-01", "Desert planet epic."},
		{"The Left Hand of Darkness", "Ursula K. Le Guin", "9780441478125", "1969-03-01", "An envoy on a glacial world."},
		{"Neuromancer", "William Gibson", "9780441569595", "1984-07-01", "Console cowboy takes one last job."},
	}
	for _, b := range books {
		if _, err := db.Exec(`
			INSERT INTO books (title, author, isbn, published_date, description, user_id)
			SELECT $1, $2, $3, $4::date, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM books WHERE user_id = $6 AND title = $1)
		`, b.title, b.author, b.isbn, b.published, b.description, id); err != nil {
			log.Fatalf("failed to seed book %q: %v", b.title, err)
		}
	}
	fmt.Printf("seeded %d books for %s (if not already present)\n", len(books), email)
}
