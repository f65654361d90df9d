package user

import (
	"birdlens/db"
	"birdlens/location"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Wire format for dates of birth, as the date picker produces them.
const dobLayout = "2006/01/02"

var mobilePrefixes = []string{"013", "014", "015", "016", "017", "018", "019"}

// ValidatePhone accepts exactly 11 digits whose first three are a known
// mobile operator prefix.
func ValidatePhone(phone string) error {
	if len(phone) != 11 {
		return errors.New("Mobile Number is invalid")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return errors.New("Mobile Number is invalid")
		}
	}
	prefix := phone[:3]
	for _, p := range mobilePrefixes {
		if prefix == p {
			return nil
		}
	}
	return errors.New("Mobile Number is invalid")
}

// ParseDOB converts the YYYY/MM/DD wire string into a date.
func ParseDOB(s string) (time.Time, error) {
	return time.Parse(dobLayout, s)
}

// FormatDOB renders a date back to the wire string.
func FormatDOB(t time.Time) string {
	return t.Format(dobLayout)
}

func loadUser(id int) (User, error) {
	var u User
	err := db.Instance.QueryRow(`
		SELECT id, email, first_name, last_name, phone, date_of_birth, image,
		       division, district, upazila, address, latitude, longitude, rating
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.DateOfBirth,
			&u.Image, &u.Division, &u.District, &u.Upazila, &u.Address,
			&u.Latitude, &u.Longitude, &u.Rating)
	return u, err
}

// GetProfileHandler returns the full record of the authenticated user.
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
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
	if err == sql.ErrNoRows {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("[Profile] Load failed for user %d: %v", id.ID, err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	log.Printf("[Profile] Retrieved full profile for user %d", id.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

type profileUpdate struct {
	FirstName   *string  `json:"f_name,omitempty"`
	LastName    *string  `json:"l_name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	DateOfBirth *string  `json:"dob,omitempty"` // YYYY/MM/DD
	Division    *string  `json:"division,omitempty"`
	District    *string  `json:"district,omitempty"`
	Upazila     *string  `json:"upazila,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// UpdateProfileHandler performs the merge-update of the edit-profile flow:
// only the provided fields are written. Location names are resolved through
// the reference-table cascade; a child naming a different parent's entry is
// rejected. Absent coordinates leave the stored ones unchanged.
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var upd profileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Printf("[Update] JSON decode error: %v", err)
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if upd.Phone != nil && *upd.Phone != "" {
		if err := ValidatePhone(*upd.Phone); err != nil {
			log.Printf("[Update] Invalid phone for user %d", id.ID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var setParts []string
	var args []interface{}

	if upd.FirstName != nil {
		setParts = append(setParts, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		setParts = append(setParts, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if upd.Phone != nil {
		setParts = append(setParts, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.DateOfBirth != nil {
		dob, err := ParseDOB(*upd.DateOfBirth)
		if err != nil {
			log.Printf("[Update] Invalid date of birth %q: %v", *upd.DateOfBirth, err)
			http.Error(w, "Invalid date of birth", http.StatusBadRequest)
			return
		}
		setParts = append(setParts, "date_of_birth = ?")
		args = append(args, FormatDOB(dob))
	}

	if upd.Division != nil {
		cascade := location.NewCascade(location.Default())
		if err := cascade.SelectDivision(*upd.Division); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if upd.District != nil {
			if err := cascade.SelectDistrict(*upd.District); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if upd.Upazila != nil {
			if err := cascade.SelectUpazila(*upd.Upazila); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		setParts = append(setParts,
			"division = ?", "district = ?", "upazila = ?", "address = ?")
		args = append(args, cascade.Division(), cascade.District(), cascade.Upazila(), cascade.Address())
	}

	if upd.Latitude != nil && upd.Longitude != nil {
		setParts = append(setParts, "latitude = ?", "longitude = ?")
		args = append(args, *upd.Latitude, *upd.Longitude)
	}

	if len(setParts) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	args = append(args, id.ID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(setParts, ", "))

	result, err := db.Instance.Exec(query, args...)
	if err != nil {
		log.Printf("[Update] DB update error: %v", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("[Update] Error checking rows affected: %v", err)
		http.Error(w, "Update verification failed", http.StatusInternalServerError)
		return
	}
	if rowsAffected == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	log.Printf("[Update] Profile updated successfully for user %d", id.ID)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Information Updated Successfully")
}

// SetImage persists an uploaded image URL onto the user record.
func SetImage(userID int, url string) error {
	_, err := db.Instance.Exec(`UPDATE users SET image = ? WHERE id = ?`, url, userID)
	return err
}
