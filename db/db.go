package db

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Instance is the shared database handle used by all feature packages.
var Instance *sql.DB

func InitDB(path string) {
	var err error
	Instance, err = sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}
	// sqlite allows a single writer; serializing through one connection
	// keeps the like/comment transactions from tripping SQLITE_BUSY.
	Instance.SetMaxOpenConns(1)
}
