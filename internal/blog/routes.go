package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwellhq/blog-backend/internal/auth"
	"github.com/inkwellhq/blog-backend/internal/middleware"
)

// Every blog route requires a session; anonymous requests get 401 and the
// frontend funnels them to the login page.
func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Get("/posts", RecentPostsHandler)
		r.Post("/posts", CreatePostHandler)
		r.Get("/posts/{postID}", GetPostHandler)
		r.Put("/posts/{postID}", UpdatePostHandler)
		r.Delete("/posts/{postID}", DeletePostHandler)

		r.Post("/posts/{postID}/like", LikePostHandler)
		r.Post("/posts/{postID}/comments", CreateCommentHandler)

		r.Put("/comments/{commentID}", UpdateCommentHandler)
		r.Delete("/comments/{commentID}", DeleteCommentHandler)
	})

	return r
}
