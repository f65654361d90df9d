package main

import (
	"fmt"
	"log"
	"net/http"

	"birdlens/classifier"
	"birdlens/comment"
	"birdlens/config"
	"birdlens/db"
	"birdlens/feed"
	"birdlens/media"
	"birdlens/pkg/db/sqlite"
	"birdlens/post"
	"birdlens/rating"
	"birdlens/user"
)

func main() {
	cfg := config.Load()

	db.InitDB(cfg.DBPath)
	sqlite.ApplyMigrations(cfg.MigrationsURL, cfg.DBPath)
	defer db.Instance.Close()

	media.Configure(cfg.UploadDir, cfg.MaxUploadMB)
	user.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)
	classifier.ConfigureModel(classifier.NewRemoteModel(cfg.ClassifierURL))

	// Every feed mutation republishes the full snapshot to subscribers.
	post.OnFeedChange(feed.Broadcast)

	// Serve stored images
	fs := http.FileServer(http.Dir(media.Dir()))
	http.Handle("/uploads/", http.StripPrefix("/uploads/", fs))

	http.HandleFunc("/register", disableCORS(user.RegisterHandler))
	http.HandleFunc("/login", disableCORS(user.LoginHandler))
	http.HandleFunc("/session", disableCORS(user.JwtMiddleware(user.SessionHandler)))

	http.HandleFunc("/profile", disableCORS(user.JwtMiddleware(profileHandler)))
	http.HandleFunc("/upload-avatar", disableCORS(user.JwtMiddleware(user.UploadAvatarHandler)))

	http.HandleFunc("/posts", disableCORS(user.JwtMiddleware(post.CreatePostHandler)))
	http.HandleFunc("/posts/all", disableCORS(user.JwtMiddleware(post.GetPostsHandler)))
	http.HandleFunc("/posts/like", disableCORS(user.JwtMiddleware(post.ToggleLikeHandler)))
	http.HandleFunc("/comments", disableCORS(user.JwtMiddleware(comment.CreateCommentHandler)))
	http.HandleFunc("/comments/all", disableCORS(comment.GetCommentsByPostHandler))

	http.HandleFunc("/feed/ws", disableCORS(feed.ServeWS))

	http.HandleFunc("/classify", disableCORS(user.JwtMiddleware(classifier.ClassifyHandler)))

	http.HandleFunc("/rating", disableCORS(user.JwtMiddleware(rating.RateHandler)))
	http.HandleFunc("/rating/report", disableCORS(rating.ReportHandler))

	fmt.Println("Server running on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}

// profileHandler dispatches the profile routes by method.
func profileHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		user.GetProfileHandler(w, r)
	case http.MethodPut:
		user.UpdateProfileHandler(w, r)
	default:
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
	}
}

func disableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}
