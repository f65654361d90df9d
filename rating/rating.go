package rating

import (
	"birdlens/db"
	"birdlens/user"
	"encoding/json"
	"log"
	"net/http"
)

// RateHandler stores the caller's 1-5 rating on their user record. The
// rating lives as a field of the record rather than in a separate
// collection.
func RateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := user.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	if _, err := db.Instance.Exec(`UPDATE users SET rating = ? WHERE id = ?`, payload.Rating, id.ID); err != nil {
		log.Printf("[Rating] Update failed for user %d: %v", id.ID, err)
		http.Error(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	log.Printf("[Rating] User %d rated %d", id.ID, payload.Rating)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int{"rating": payload.Rating})
}

// ReportHandler averages the ratings of every user that has one.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	var avg float64
	var count int
	err := db.Instance.QueryRow(`
		SELECT COALESCE(AVG(rating), 0), COUNT(rating)
		FROM users WHERE rating IS NOT NULL`).Scan(&avg, &count)
	if err != nil {
		log.Printf("[Rating] Report query failed: %v", err)
		http.Error(w, "Failed to compute report", http.StatusInternalServerError)
		return
	}

	log.Printf("[Rating] Average %.2f over %d ratings", avg, count)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"average": avg,
		"count":   count,
	})
}
