package post

import (
	"birdlens/db"
	"birdlens/media"
	"birdlens/user"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PageSize is the display page length. The full snapshot is always fetched;
// pages are slices of it.
const PageSize = 5

var feedChanged func()

// OnFeedChange registers the hook invoked after every feed mutation. Main
// wires it to the feed broadcaster.
func OnFeedChange(fn func()) {
	feedChanged = fn
}

// NotifyFeed fires the feed-change hook. Exposed so the comment package can
// republish after its own writes.
func NotifyFeed() {
	if feedChanged != nil {
		feedChanged()
	}
}

// LoadFeed returns the full reverse-chronological snapshot, liker sets
// included.
func LoadFeed() ([]Post, error) {
	rows, err := db.Instance.Query(`
		SELECT post_id, author_id, author_name, author_image, message, image,
		       like_count, comment_count, created_at
		FROM posts
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.AuthorImage,
			&p.Message, &p.Image, &p.LikeCount, &p.CommentCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		likes, err := loadLikers(posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Likes = likes
	}
	return posts, nil
}

func loadLikers(postID string) ([]int, error) {
	rows, err := db.Instance.Query(`SELECT user_id FROM post_likes WHERE post_id = ?`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likers []int
	for rows.Next() {
		var uid int
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		likers = append(likers, uid)
	}
	return likers, rows.Err()
}

// Create post
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := user.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var authorName, authorImage string
	var first, last string
	err := db.Instance.QueryRow(`SELECT first_name, last_name, image FROM users WHERE id = ?`, id.ID).
		Scan(&first, &last, &authorImage)
	if err != nil {
		log.Printf("[Posts] User lookup failed: %v", err)
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}
	authorName = first + " " + last

	message := r.FormValue("message")
	if message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	imageURL, err := media.SaveUpload(r, "image")
	if err != nil {
		log.Printf("[Posts] Media upload failed: %v", err)
		http.Error(w, "Media upload failed", http.StatusInternalServerError)
		return
	}

	p := Post{
		ID:          uuid.NewString(),
		AuthorID:    id.ID,
		AuthorName:  authorName,
		AuthorImage: authorImage,
		Message:     message,
		Image:       imageURL,
		CreatedAt:   time.Now().UTC().Format(TimeLayout),
	}

	_, err = db.Instance.Exec(`
		INSERT INTO posts (post_id, author_id, author_name, author_image, message, image, like_count, comment_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?)`,
		p.ID, p.AuthorID, p.AuthorName, p.AuthorImage, p.Message, p.Image, p.CreatedAt)
	if err != nil {
		log.Printf("[Posts] Insert failed: %v", err)
		http.Error(w, "Error saving post", http.StatusInternalServerError)
		return
	}

	log.Printf("[Posts] User %d created new post (ID: %s)", id.ID, p.ID)
	NotifyFeed()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// GetPostsHandler returns the feed. The whole snapshot is fetched each time;
// an optional page query slices it for display.
func GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := user.FromContext(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	posts, err := LoadFeed()
	if err != nil {
		log.Printf("[Posts] Query failed: %v", err)
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}

	total := len(posts)
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			http.Error(w, "Invalid page", http.StatusBadRequest)
			return
		}
		posts = slicePage(posts, page)
	}

	log.Printf("[Posts] Returning %d of %d posts", len(posts), total)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": total,
		"posts": posts,
	})
}

func slicePage(posts []Post, page int) []Post {
	start := (page - 1) * PageSize
	if start >= len(posts) {
		return nil
	}
	end := start + PageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}
