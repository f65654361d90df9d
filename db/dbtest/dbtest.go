package dbtest

import (
	"birdlens/db"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// schema mirrors pkg/db/migrations/sqlite/000001_init.up.sql.
const schema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    date_of_birth TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    division TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    upazila TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    latitude REAL,
    longitude REAL,
    rating INTEGER
);

CREATE TABLE posts (
    post_id TEXT PRIMARY KEY,
    author_id INTEGER NOT NULL REFERENCES users(id),
    author_name TEXT NOT NULL,
    author_image TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    like_count INTEGER NOT NULL DEFAULT 0,
    comment_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE post_likes (
    post_id TEXT NOT NULL REFERENCES posts(post_id),
    user_id INTEGER NOT NULL REFERENCES users(id),
    PRIMARY KEY (post_id, user_id)
);

CREATE TABLE comments (
    comment_id TEXT PRIMARY KEY,
    post_id TEXT NOT NULL REFERENCES posts(post_id),
    user_name TEXT NOT NULL,
    user_image TEXT NOT NULL DEFAULT '',
    comment TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Open points db.Instance at a fresh in-memory database with the full schema
// and restores the previous handle when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// A single connection keeps the in-memory database alive and serializes
	// writers, same as production.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	prev := db.Instance
	db.Instance = conn
	t.Cleanup(func() {
		db.Instance = prev
		conn.Close()
	})
	return conn
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, email, firstName, lastName string) int {
	t.Helper()

	res, err := db.Instance.Exec(`
		INSERT INTO users (email, password, first_name, last_name)
		VALUES (?, 'x', ?, ?)`, email, firstName, lastName)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return int(id)
}

// SeedPost inserts a post with zeroed counters.
func SeedPost(t *testing.T, postID string, authorID int, message, createdAt string) {
	t.Helper()

	_, err := db.Instance.Exec(`
		INSERT INTO posts (post_id, author_id, author_name, author_image, message, image, like_count, comment_count, created_at)
		VALUES (?, ?, 'Seed User', '', ?, '', 0, 0, ?)`, postID, authorID, message, createdAt)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
}
