package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/inkwellhq/blog-backend/internal/db"
	"github.com/inkwellhq/blog-backend/internal/utils"
)

// SessionCookieName matches the cookie the frontend presents on every request.
const SessionCookieName = "user_id"

// Codec is the process-wide session token codec, configured once in Init.
var Codec *TokenCodec

// IssueSession mints a session token for the user and sets it as the session
// cookie on the response.
func IssueSession(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    Codec.Mint(userID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession replaces the session cookie with an empty, already-expired
// one. MaxAge<0 alone should suffice, but an explicit past Expires covers
// clients that only honor the older attribute.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

// CurrentUser resolves the request's session cookie to an account. A missing
// cookie, a tampered token, and a token for a since-deleted account all mean
// the same thing: the request is anonymous.
func CurrentUser(r *http.Request) (*User, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	userID, ok := Codec.Verify(cookie.Value)
	if !ok {
		return nil, false
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, false
	}

	return &user, true
}

// SessionInfo adapts the token codec + user store to the middleware's
// SessionFetcher interface without the middleware importing this package.
type SessionInfo struct{}

var errInvalidSession = errors.New("invalid session")

func (si SessionInfo) FindUserBySessionToken(token string) (utils.SessionData, error) {
	userID, ok := Codec.Verify(token)
	if !ok {
		return utils.SessionData{}, errInvalidSession
	}

	// Re-check the account still exists: a valid signature on a deleted
	// user's ID must not authenticate.
	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return utils.SessionData{}, errInvalidSession
	}

	return utils.SessionData{UserID: user.UserID}, nil
}
