package blog

// Ownership checks are pure functions of their inputs so they can be tested
// without a database. An empty currentID means the request is anonymous.

// CanMutate reports whether currentID may edit or delete a resource owned by
// ownerID: logged in, and strictly the same identity.
func CanMutate(ownerID, currentID string) bool {
	return currentID != "" && currentID == ownerID
}

// LikeDecision is the outcome of a like request.
type LikeDecision int

const (
	// LikeForbidden: anonymous, or the post's own author.
	LikeForbidden LikeDecision = iota
	// LikeAdd: record a new like.
	LikeAdd
	// LikeRemove: the user already liked the post, so toggle it off.
	LikeRemove
)

// DecideLike applies the like rules. Self-like is checked before the toggle
// check: the author is forbidden even if a stray self-like row exists.
func DecideLike(postOwnerID, currentID string, alreadyLiked bool) LikeDecision {
	if currentID == "" || currentID == postOwnerID {
		return LikeForbidden
	}
	if alreadyLiked {
		return LikeRemove
	}
	return LikeAdd
}
