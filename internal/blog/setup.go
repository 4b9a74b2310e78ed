package blog

import (
	"log"

	"github.com/inkwellhq/blog-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "blog"); err != nil {
		log.Fatal("Failed to create blog schema: ", err)
	}

	if err := db.DB.AutoMigrate(&Post{}, &Comment{}, &Like{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
