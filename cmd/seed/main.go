package main

import (
	"flag"
	"log"

	"github.com/inkwellhq/blog-backend/internal/auth"
	"github.com/inkwellhq/blog-backend/internal/blog"
	"github.com/inkwellhq/blog-backend/internal/config"
	"github.com/inkwellhq/blog-backend/internal/db"
	"github.com/inkwellhq/blog-backend/internal/seeds"
	"github.com/joho/godotenv"
)

var seedFile = flag.String("file", "seeds/dev.yaml", "Path to the YAML seed fixture")

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	cfg := config.Load()
	db.Connect(cfg.DatabaseURL)
	auth.Init(cfg)
	blog.Init()

	if err := seeds.SeedAll(*seedFile); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
