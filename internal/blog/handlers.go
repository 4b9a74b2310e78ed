package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwellhq/blog-backend/internal/db"
	"github.com/inkwellhq/blog-backend/internal/utils"
	"gorm.io/gorm"
)

// Error messages shown to users on ownership violations, kept verbatim from
// the frontend copy.
const (
	errOnlyAuthorEdit      = "Sorry, only the author may edit that post."
	errOnlyAuthorRemove    = "Sorry, only the author may remove that post."
	errNoSelfLike          = "Sorry, you cannot like your own post."
	errOnlyCommenterEdit   = "Sorry, only the author may edit that comment."
	errOnlyCommenterRemove = "Sorry, only the author may remove that comment."
)

const recentPostLimit = 10

func RecentPostsHandler(w http.ResponseWriter, r *http.Request) {
	var posts []Post

	err := db.DB.Order("created_at DESC").Limit(recentPostLimit).Find(&posts).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(posts); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type postInput struct {
	Subject string   `json:"subject"`
	Entry   string   `json:"entry"`
	Tags    []string `json:"tags"`
}

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Subject == "" || input.Entry == "" {
		http.Error(w, "Subject and content, please!", http.StatusBadRequest)
		return
	}

	post := Post{
		PostID:   uuid.NewString(),
		AuthorID: userID,
		Subject:  input.Subject,
		Entry:    input.Entry,
		Tags:     input.Tags,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

func GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var post Post
	err := db.DB.Preload("Comments").First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	postID := chi.URLParam(r, "postID")

	var post Post
	err := db.DB.First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !CanMutate(post.AuthorID, userID) {
		http.Error(w, errOnlyAuthorEdit, http.StatusForbidden)
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Subject == "" || input.Entry == "" {
		http.Error(w, "Subject and content, please!", http.StatusBadRequest)
		return
	}

	post.Subject = input.Subject
	post.Entry = input.Entry
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if err := db.DB.Save(&post).Error; err != nil {
		http.Error(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	postID := chi.URLParam(r, "postID")

	var post Post
	err := db.DB.First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !CanMutate(post.AuthorID, userID) {
		http.Error(w, errOnlyAuthorRemove, http.StatusForbidden)
		return
	}

	// Comments and likes go with the post, all in one transaction.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.PostID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.PostID).Delete(&Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Post deleted")
}

func LikePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	postID := chi.URLParam(r, "postID")

	var post Post
	err := db.DB.First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var existing Like
	alreadyLiked := true
	err = db.DB.First(&existing, "post_id = ? AND user_id = ?", post.PostID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		alreadyLiked = false
	} else if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch DecideLike(post.AuthorID, userID, alreadyLiked) {
	case LikeForbidden:
		http.Error(w, errNoSelfLike, http.StatusForbidden)
		return

	case LikeRemove:
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Delete(&existing)
			if res.Error != nil {
				return res.Error
			}
			// A concurrent unlike may have removed the row first; only the
			// request that actually deleted it gets to decrement, or the
			// counter drifts negative.
			if res.RowsAffected == 0 {
				return nil
			}
			return tx.Model(&post).Update("likes", gorm.Expr("likes - 1")).Error
		})
		if err != nil {
			http.Error(w, "Failed to remove like", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Like removed")

	case LikeAdd:
		like := Like{
			LikeID: uuid.NewString(),
			PostID: post.PostID,
			UserID: userID,
		}
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			return tx.Model(&post).Update("likes", gorm.Expr("likes + 1")).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against an identical like; the winner already
			// counted it, so this request is a no-op success.
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Like added")
			return
		}
		if err != nil {
			http.Error(w, "Failed to add like", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Like added")
	}
}

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	postID := chi.URLParam(r, "postID")

	var post Post
	err := db.DB.First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var input struct {
		Entry string `json:"entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Entry == "" {
		http.Error(w, "Please enter a comment", http.StatusBadRequest)
		return
	}

	comment := Comment{
		CommentID: uuid.NewString(),
		PostID:    post.PostID,
		AuthorID:  userID,
		Entry:     input.Entry,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		http.Error(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

func UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	commentID := chi.URLParam(r, "commentID")

	var comment Comment
	err := db.DB.First(&comment, "comment_id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !CanMutate(comment.AuthorID, userID) {
		http.Error(w, errOnlyCommenterEdit, http.StatusForbidden)
		return
	}

	var input struct {
		Entry string `json:"entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Entry == "" {
		http.Error(w, "Please enter a comment", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&comment).Update("entry", input.Entry).Error; err != nil {
		http.Error(w, "Failed to update comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	commentID := chi.URLParam(r, "commentID")

	var comment Comment
	err := db.DB.First(&comment, "comment_id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !CanMutate(comment.AuthorID, userID) {
		http.Error(w, errOnlyCommenterRemove, http.StatusForbidden)
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Comment deleted")
}
