// Package db opens the Postgres handle and bootstraps the relational
// schema. Events live in Mongo; everything keyed to a user row lives here.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Open(dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)
	return sqldb, nil
}

func EnsureSchema(sqldb *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`
	if _, err := sqldb.Exec(createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	createPostsTable := `
	CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := sqldb.Exec(createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}

	// event_id is a UUID minted by the event store (Mongo); the composite
	// unique key is what makes a duplicate registration impossible.
	createRegistrationsTable := `
	CREATE TABLE IF NOT EXISTS registrations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		event_id UUID NOT NULL,
		UNIQUE (user_id, event_id)
	);`
	if _, err := sqldb.Exec(createRegistrationsTable); err != nil {
		return fmt.Errorf("create registrations table: %w", err)
	}
	return nil
}
