package auth

import (
	"log"

	"github.com/inkwellhq/blog-backend/internal/config"
	"github.com/inkwellhq/blog-backend/internal/db"
)

func Init(cfg *config.Config) {
	Codec = NewTokenCodec([]byte(cfg.SessionSecret))

	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
