package classifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// RemoteModel calls an inference endpoint with the image bytes and decodes
// the activation vector it returns.
type RemoteModel struct {
	URL    string
	Client *http.Client
}

func NewRemoteModel(url string) *RemoteModel {
	return &RemoteModel{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *RemoteModel) Predict(imagePath string) ([]float64, error) {
	if m.URL == "" {
		return nil, errors.New("classifier endpoint is not configured")
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, m.URL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Activations []float64 `json:"activations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Activations, nil
}
