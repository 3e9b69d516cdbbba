package taskapi

import (
	"database/sql"
)

func Connect(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

// CreateTables sets up the sqlite schema for local development and tests.
// The postgres schema is managed by migrations outside this binary.
func CreateTables(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS tasks (
  task_id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  assigned_to TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  deadline TIMESTAMP,
  status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
  email TEXT PRIMARY KEY,
  role TEXT NOT NULL,
  password_hash TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
