package post

import (
	"birdlens/db"
	"birdlens/user"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// ToggleLike flips the caller's membership in the post's liker set and moves
// the counter with it. Membership row and counter change commit in one
// transaction, so the count always equals the set cardinality and a repeated
// toggle from another device cannot double-apply.
func ToggleLike(postID string, userID int) (liked bool, err error) {
	tx, err := db.Instance.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT 1 FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID).Scan(&exists)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)`, postID, userID); err != nil {
			return false, err
		}
		if _, err := tx.Exec(`UPDATE posts SET like_count = like_count + 1 WHERE post_id = ?`, postID); err != nil {
			return false, err
		}
		liked = true
	case err != nil:
		return false, err
	default:
		if _, err := tx.Exec(`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID); err != nil {
			return false, err
		}
		if _, err := tx.Exec(`UPDATE posts SET like_count = like_count - 1 WHERE post_id = ?`, postID); err != nil {
			return false, err
		}
		liked = false
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return liked, nil
}

func ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := user.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID := r.URL.Query().Get("post_id")
	if postID == "" {
		http.Error(w, "Post ID is required", http.StatusBadRequest)
		return
	}

	var exists int
	if err := db.Instance.QueryRow(`SELECT 1 FROM posts WHERE post_id = ?`, postID).Scan(&exists); err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	liked, err := ToggleLike(postID, id.ID)
	if err != nil {
		log.Printf("[Likes] Toggle failed for post %s user %d: %v", postID, id.ID, err)
		http.Error(w, "Error updating likes", http.StatusInternalServerError)
		return
	}

	log.Printf("[Likes] User %d %s post %s", id.ID, likedWord(liked), postID)
	NotifyFeed()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func likedWord(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}
