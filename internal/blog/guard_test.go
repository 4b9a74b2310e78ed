package blog_test

import (
	"testing"

	"github.com/inkwellhq/blog-backend/internal/blog"
)

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		ownerID string
		current string
		want    bool
	}{
		{"owner may mutate", "user-a", "user-a", true},
		{"other user may not", "user-a", "user-b", false},
		{"anonymous may not", "user-a", "", false},
		{"anonymous owner never matches anonymous", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := blog.CanMutate(tc.ownerID, tc.current); got != tc.want {
				t.Errorf("CanMutate(%q, %q) = %v, want %v", tc.ownerID, tc.current, got, tc.want)
			}
		})
	}
}

// TestDecideLike_SelfLike verifies the author is forbidden regardless of
// existing-like state — the self-like rule outranks the toggle rule.
func TestDecideLike_SelfLike(t *testing.T) {
	for _, alreadyLiked := range []bool{false, true} {
		if got := blog.DecideLike("user-a", "user-a", alreadyLiked); got != blog.LikeForbidden {
			t.Errorf("DecideLike(self, alreadyLiked=%v) = %v, want LikeForbidden", alreadyLiked, got)
		}
	}
}

func TestDecideLike_Anonymous(t *testing.T) {
	if got := blog.DecideLike("user-a", "", false); got != blog.LikeForbidden {
		t.Errorf("DecideLike(anonymous) = %v, want LikeForbidden", got)
	}
}

// TestDecideLike_Toggle verifies a first like adds and a second one removes.
func TestDecideLike_Toggle(t *testing.T) {
	if got := blog.DecideLike("user-a", "user-b", false); got != blog.LikeAdd {
		t.Errorf("first like = %v, want LikeAdd", got)
	}
	if got := blog.DecideLike("user-a", "user-b", true); got != blog.LikeRemove {
		t.Errorf("second like = %v, want LikeRemove", got)
	}
}
