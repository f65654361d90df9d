package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8088" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("MaxUploadMB = %d", cfg.MaxUploadMB)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BIRDLENS_ADDR", ":9000")
	t.Setenv("BIRDLENS_JWT_TTL", "45m")
	t.Setenv("BIRDLENS_CLASSIFIER_URL", "http://localhost:5000/predict")

	cfg := Load()

	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.JWTTTL != 45*time.Minute {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.ClassifierURL != "http://localhost:5000/predict" {
		t.Errorf("ClassifierURL = %q", cfg.ClassifierURL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("BIRDLENS_JWT_TTL", "soon")
	t.Setenv("BIRDLENS_MAX_UPLOAD_MB", "lots")

	cfg := Load()

	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want default", cfg.JWTTTL)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("MaxUploadMB = %d, want default", cfg.MaxUploadMB)
	}
}
