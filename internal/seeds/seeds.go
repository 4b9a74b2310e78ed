package seeds

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/inkwellhq/blog-backend/internal/auth"
	"github.com/inkwellhq/blog-backend/internal/blog"
	"github.com/inkwellhq/blog-backend/internal/db"
	"gorm.io/gorm"
)

// Fixture file shape. Posts and comments reference users by username so the
// YAML stays readable; IDs are generated at insert time.
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
	Posts []SeedPost `yaml:"posts"`
}

type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

type SeedPost struct {
	Author   string        `yaml:"author"`
	Subject  string        `yaml:"subject"`
	Entry    string        `yaml:"entry"`
	Tags     []string      `yaml:"tags"`
	Comments []SeedComment `yaml:"comments"`
}

type SeedComment struct {
	Author string `yaml:"author"`
	Entry  string `yaml:"entry"`
}

// SeedAll loads the fixture file and inserts users, posts, and comments.
// Users that already exist are reused, so reseeding is safe.
func SeedAll(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	userIDs, err := seedUsers(file.Users)
	if err != nil {
		return err
	}

	return seedPosts(file.Posts, userIDs)
}

func seedUsers(users []SeedUser) (map[string]string, error) {
	userIDs := make(map[string]string, len(users))

	for _, su := range users {
		var existing auth.User
		err := db.DB.First(&existing, "username = ?", su.Username).Error
		if err == nil {
			userIDs[su.Username] = existing.UserID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hashed, err := auth.HashPassword(su.Username, su.Password)
		if err != nil {
			return nil, err
		}

		user := auth.User{
			UserID:         uuid.NewString(),
			Username:       su.Username,
			HashedPassword: hashed,
			Email:          su.Email,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		userIDs[su.Username] = user.UserID
		log.Printf("Seeded user %s", su.Username)
	}

	return userIDs, nil
}

func seedPosts(posts []SeedPost, userIDs map[string]string) error {
	for _, sp := range posts {
		authorID, ok := userIDs[sp.Author]
		if !ok {
			return fmt.Errorf("post %q references unknown user %q", sp.Subject, sp.Author)
		}

		post := blog.Post{
			PostID:   uuid.NewString(),
			AuthorID: authorID,
			Subject:  sp.Subject,
			Entry:    sp.Entry,
			Tags:     sp.Tags,
		}
		if err := db.DB.Create(&post).Error; err != nil {
			return err
		}

		for _, sc := range sp.Comments {
			commenterID, ok := userIDs[sc.Author]
			if !ok {
				return fmt.Errorf("comment on %q references unknown user %q", sp.Subject, sc.Author)
			}
			comment := blog.Comment{
				CommentID: uuid.NewString(),
				PostID:    post.PostID,
				AuthorID:  commenterID,
				Entry:     sc.Entry,
			}
			if err := db.DB.Create(&comment).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded post %q with %d comments", sp.Subject, len(sp.Comments))
	}

	return nil
}
