package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens the database at the given path and applies the schema.
// The path is either a local sqlite file (":memory:" works) or a
// libsql url (libsql://, https://, http://, wss://, ws://) for a
// hosted replica. Re-applying an existing schema is not an error.
func OpenDB(schema, path string) (*sql.DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isRemote(path string) bool {
	for _, scheme := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(path, scheme) {
			return true
		}
	}
	return false
}

func open(path string) (*sql.DB, error) {
	if isRemote(path) {
		return sql.Open("libsql", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
