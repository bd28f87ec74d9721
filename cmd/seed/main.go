// Command seed fills the development database with fake civic reports.
package main

import (
	"flag"
	"log"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/config"
	"github.com/lluisEvan/ProjetoAppFiscal/internal/database"
	"github.com/lluisEvan/ProjetoAppFiscal/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 12, "number of users to create")
	numPosts := flag.Int("posts", 40, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
