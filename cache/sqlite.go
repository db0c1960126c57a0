package cache

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore creates a new store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func NewSQLiteStore(filename string) SQLiteStore {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		expires INTEGER,
		status INTEGER,
		etag TEXT,
		headers BLOB,
		body BLOB
	)`)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec("CREATE INDEX IF NOT EXISTS expires_idx ON responses (expires)")
	if err != nil {
		panic(err)
	}
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		panic(err)
	}
	return SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}
}

func (s SQLiteStore) Get(key string) (Entry, bool, error) {
	entry := Entry{Key: key}
	var expires int64
	err := s.db.QueryRow(
		"SELECT expires, status, etag, headers, body FROM responses WHERE key = ?", key,
	).Scan(&expires, &entry.Status, &entry.ETag, &entry.Headers, &entry.Body)
	if err != nil {
		return entry, false, err
	}
	entry.Expires = time.Unix(expires, 0)
	if !entry.Fresh() {
		return entry, false, nil
	}
	return entry, true, nil
}

func (s SQLiteStore) Put(entry Entry) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO responses
		(key, expires, status, etag, headers, body) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Key, entry.Expires.Unix(), entry.Status, entry.ETag, entry.Headers, entry.Body)
	return err
}

func (s SQLiteStore) Purge(key string) {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM responses WHERE key = ?", key)
	if err != nil {
		panic(err)
	}
}

func (s SQLiteStore) Has(key string) bool {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM responses WHERE key = ?", key).Scan(&one)
	return err == nil
}
