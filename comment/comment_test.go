package comment

import (
	"birdlens/db"
	"birdlens/db/dbtest"
	"birdlens/post"
	"birdlens/user"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAddKeepsCounterInStep(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "c@example.com", "Com", "Menter")
	dbtest.SeedPost(t, "p1", uid, "hello", time.Now().UTC().Format(post.TimeLayout))

	if _, err := Add("p1", "Com Menter", "", "first!"); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := Add("p1", "Com Menter", "", "second!"); err != nil {
		t.Fatalf("add second: %v", err)
	}

	var counter, stored int
	if err := db.Instance.QueryRow(`SELECT comment_count FROM posts WHERE post_id = 'p1'`).Scan(&counter); err != nil {
		t.Fatalf("read comment_count: %v", err)
	}
	if err := db.Instance.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = 'p1'`).Scan(&stored); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if counter != 2 || stored != 2 {
		t.Fatalf("counter %d stored %d, want 2 and 2", counter, stored)
	}

	comments, err := ListByPost("p1")
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "first!" || comments[1].Text != "second!" {
		t.Fatalf("comments out of order: %+v", comments)
	}
}

func TestCreateCommentHandler(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "c@example.com", "Com", "Menter")
	dbtest.SeedPost(t, "p1", uid, "hello", time.Now().UTC().Format(post.TimeLayout))

	body := strings.NewReader(`{"comment": "Lovely shot"}`)
	req := httptest.NewRequest(http.MethodPost, "/comments?post_id=p1", body)
	req = req.WithContext(user.WithIdentity(req.Context(), user.Identity{ID: uid}))
	rec := httptest.NewRecorder()
	CreateCommentHandler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var c Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode comment: %v", err)
	}
	if c.UserName != "Com Menter" || c.Text != "Lovely shot" {
		t.Fatalf("comment = %+v", c)
	}
}

func TestCreateCommentUnknownPost(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "c@example.com", "Com", "Menter")

	body := strings.NewReader(`{"comment": "hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/comments?post_id=missing", body)
	req = req.WithContext(user.WithIdentity(req.Context(), user.Identity{ID: uid}))
	rec := httptest.NewRecorder()
	CreateCommentHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var stored int
	if err := db.Instance.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&stored); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if stored != 0 {
		t.Fatalf("comment stored against missing post")
	}
}

func TestGetCommentsEmptyPost(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "c@example.com", "Com", "Menter")
	dbtest.SeedPost(t, "p1", uid, "hello", time.Now().UTC().Format(post.TimeLayout))

	req := httptest.NewRequest(http.MethodGet, "/comments/all?post_id=p1", nil)
	rec := httptest.NewRecorder()
	GetCommentsByPostHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
