package comment

import (
	"birdlens/db"
	"birdlens/post"
	"birdlens/user"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only document under its parent post, carrying an
// author snapshot like the post itself does.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	UserName  string `json:"userName"`
	UserImage string `json:"image,omitempty"`
	Text      string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// Add appends the comment and bumps the parent's commentCount in a single
// transaction, so a crash cannot leave the counter behind the documents.
func Add(postID, userName, userImage, text string) (Comment, error) {
	c := Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserName:  userName,
		UserImage: userImage,
		Text:      text,
		CreatedAt: time.Now().UTC().Format(post.TimeLayout),
	}

	tx, err := db.Instance.Begin()
	if err != nil {
		return Comment{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO comments (comment_id, post_id, user_name, user_image, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.PostID, c.UserName, c.UserImage, c.Text, c.CreatedAt); err != nil {
		return Comment{}, err
	}
	if _, err := tx.Exec(`UPDATE posts SET comment_count = comment_count + 1 WHERE post_id = ?`, postID); err != nil {
		return Comment{}, err
	}

	if err := tx.Commit(); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ListByPost returns a post's comments in creation-time order.
func ListByPost(postID string) ([]Comment, error) {
	rows, err := db.Instance.Query(`
		SELECT comment_id, post_id, user_name, user_image, comment, created_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserName, &c.UserImage, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create a new comment
func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
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

	var payload struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("[Comments] JSON decode failed: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Comment == "" {
		http.Error(w, "Comment text is required", http.StatusBadRequest)
		return
	}

	var exists int
	if err := db.Instance.QueryRow(`SELECT 1 FROM posts WHERE post_id = ?`, postID).Scan(&exists); err != nil {
		log.Printf("[Comments] Post lookup failed: %v", err)
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	var first, last, image string
	if err := db.Instance.QueryRow(`SELECT first_name, last_name, image FROM users WHERE id = ?`, id.ID).
		Scan(&first, &last, &image); err != nil {
		log.Printf("[Comments] User lookup failed: %v", err)
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	c, err := Add(postID, first+" "+last, image, payload.Comment)
	if err != nil {
		log.Printf("[Comments] Insert failed: %v", err)
		http.Error(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	log.Printf("[Comments] Comment %s created on post %s by user %d", c.ID, postID, id.ID)
	post.NotifyFeed()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Get all comments for a post
func GetCommentsByPostHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	postID := r.URL.Query().Get("post_id")
	if postID == "" {
		http.Error(w, "Post ID is required", http.StatusBadRequest)
		return
	}

	comments, err := ListByPost(postID)
	if err != nil {
		log.Printf("[Comments] Query failed: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	log.Printf("[Comments] Retrieved %d comments for post %s", len(comments), postID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comments)
}
