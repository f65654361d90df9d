package classifier

import (
	"birdlens/media"
	"encoding/json"
	"log"
	"net/http"
)

var model Model

// ConfigureModel sets the inference backend used by the HTTP handler.
func ConfigureModel(m Model) {
	model = m
}

// ClassifyHandler takes a multipart image, stores it through the media
// pipeline and returns the predicted species label.
func ClassifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if model == nil {
		http.Error(w, "Classifier is not configured", http.StatusServiceUnavailable)
		return
	}

	imageURL, err := media.SaveUpload(r, "image")
	if err != nil {
		log.Printf("[Classify] Image upload failed: %v", err)
		http.Error(w, "Image upload failed", http.StatusInternalServerError)
		return
	}
	if imageURL == "" {
		http.Error(w, "Image is required", http.StatusBadRequest)
		return
	}

	label, err := Classify(model, media.DiskPath(imageURL))
	if err != nil {
		log.Printf("[Classify] Prediction failed: %v", err)
		http.Error(w, "Prediction failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[Classify] Predicted %q for %s", label, imageURL)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"prediction": label,
		"image":      imageURL,
	})
}
