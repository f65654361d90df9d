package user

import (
	"birdlens/media"
	"encoding/json"
	"log"
	"net/http"
)

// UploadAvatarHandler stores a profile image through the media pipeline and
// persists the returned URL onto the caller's record. An upload failure
// leaves the previous image reference intact.
func UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid method", http.StatusMethodNotAllowed)
		return
	}

	id, ok := FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	imageURL, err := media.SaveUpload(r, "avatar")
	if err != nil {
		log.Printf("[Avatar] Upload failed for user %d: %v", id.ID, err)
		http.Error(w, "Failed to upload file", http.StatusInternalServerError)
		return
	}
	if imageURL == "" {
		http.Error(w, "Avatar file is required", http.StatusBadRequest)
		return
	}

	if err := SetImage(id.ID, imageURL); err != nil {
		log.Printf("[Avatar] DB update failed for user %d: %v", id.ID, err)
		http.Error(w, "Failed to update avatar", http.StatusInternalServerError)
		return
	}

	log.Printf("[Avatar] User %d avatar set to %s", id.ID, imageURL)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"image": imageURL})
}
