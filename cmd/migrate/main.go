package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"hypotest/adapters/postgres"
	"hypotest/internal"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 || (os.Args[1] != "up" && os.Args[1] != "status") {
		log.Fatal("Usage: migrate up|status [database_url]")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 2 {
		databaseURL = os.Args[2]
	}
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	migrator := postgres.NewMigrator(db, internal.DefaultLogger)

	switch os.Args[1] {
	case "up":
		if err := migrator.Up(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	case "status":
		applied, err := migrator.Applied(ctx)
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		migrations, err := postgres.Migrations()
		if err != nil {
			log.Fatalf("Failed to list migrations: %v", err)
		}
		fmt.Println("Migration Status:")
		fmt.Println("=================")
		count := 0
		for _, m := range migrations {
			status := "pending"
			if _, ok := applied[m.Version]; ok {
				status = "applied"
				count++
			}
			fmt.Printf("  %s_%s: %s\n", m.Version, m.Name, status)
		}
		fmt.Printf("\nSummary: %d/%d migrations applied\n", count, len(migrations))
	}
}
