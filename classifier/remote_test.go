package classifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bird.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))
	return path
}

func TestRemoteModelPredict(t *testing.T) {
	want := make([]float64, len(Labels))
	want[9] = 0.93

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		file.Close()
		assert.Equal(t, "bird.jpg", header.Filename)

		json.NewEncoder(w).Encode(map[string]interface{}{"activations": want})
	}))
	defer srv.Close()

	m := NewRemoteModel(srv.URL)
	got, err := m.Predict(writeImage(t))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	label, err := Classify(m, writeImage(t))
	require.NoError(t, err)
	assert.Equal(t, "Kingfisher (Machranga)", label)
}

func TestRemoteModelEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := NewRemoteModel(srv.URL)
	_, err := m.Predict(writeImage(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRemoteModelUnconfigured(t *testing.T) {
	m := NewRemoteModel("")
	_, err := m.Predict(writeImage(t))
	assert.Error(t, err)
}
