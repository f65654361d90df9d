package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var (
	uploadDir   = "uploads"
	maxUploadMB = int64(10)
)

// Configure sets the directory uploaded files are stored under and the
// in-memory parse limit for multipart bodies.
func Configure(dir string, maxMB int64) {
	if dir != "" {
		uploadDir = dir
	}
	if maxMB > 0 {
		maxUploadMB = maxMB
	}
}

// SaveUpload stores the named multipart file under a generated name and
// returns the public URL it will be served from. A missing file is not an
// error: the caller keeps its previous image reference. No resizing and no
// retry; a failed upload surfaces as an error the caller logs.
func SaveUpload(r *http.Request, fieldName string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadMB << 20); err != nil && err != http.ErrNotMultipart {
		return "", err
	}

	file, header, err := r.FormFile(fieldName)
	if err != nil {
		// Posts without an image arrive as plain forms or as multipart
		// bodies lacking the field; both mean "keep the previous image".
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			return "", err
		}
	}

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	filePath := filepath.Join(uploadDir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/uploads/" + fileName, nil
}

// DiskPath maps a public upload URL back to the stored file.
func DiskPath(publicURL string) string {
	return filepath.Join(uploadDir, filepath.Base(publicURL))
}

// Dir returns the configured upload directory.
func Dir() string {
	return uploadDir
}
