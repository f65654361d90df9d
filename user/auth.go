package user

import (
	"birdlens/db"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// -------------------- Handlers --------------------

type registerRequest struct {
	FirstName       string `json:"f_name"`
	LastName        string `json:"l_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[Register] JSON decode error: %v", err)
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	// Mismatch aborts before anything is written.
	if req.Password != req.ConfirmPassword {
		log.Printf("[Register] Password mismatch for %s", req.Email)
		http.Error(w, "Password didn't match", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Register] Password hash error: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	_, err = db.Instance.Exec(`
        INSERT INTO users(email, password, first_name, last_name)
        VALUES (?, ?, ?, ?)`,
		req.Email, string(hashed), req.FirstName, req.LastName)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Printf("[Register] Duplicate email %s", req.Email)
			http.Error(w, "Email is already registered", http.StatusConflict)
			return
		}
		log.Printf("[Register] DB insert error: %v", err)
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	log.Printf("[Register] User %s registered successfully", req.Email)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintln(w, "User registered successfully")
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	var storedPassword string
	var userID int
	err := db.Instance.QueryRow(`SELECT id, password FROM users WHERE email=?`, req.Email).Scan(&userID, &storedPassword)
	if err != nil {
		log.Printf("[Login] User not found: %v", err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(req.Password)); err != nil {
		log.Printf("[Login] Invalid password for id=%d", userID)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := GenerateJWT(userID, req.Email)
	if err != nil {
		log.Printf("[Login] Token generation failed: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	log.Printf("[Login] User %d logged in", userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// SessionHandler is the launch-time re-authentication check: a client holding
// a persisted token asks whether it still names a user. 401 means fall
// through to the anonymous screens.
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := loadUser(id.ID)
	if err != nil {
		log.Printf("[Session] User %d not found: %v", id.ID, err)
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}
