// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the connection pool and the schema.

# Opening a Store

Open creates a bounded pool and pings it:

	store, err := db.Open(ctx, db.Options{
		Driver:   db.DriverPostgres,
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.MaxConns,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Supported drivers are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite).
SQLite connections get foreign keys, a busy timeout and BEGIN IMMEDIATE
unless the DSN already sets them. When every connection is checked out,
callers wait for one to be returned; the request context bounds that wait.

# Queries

Store and Tx accept ? placeholders and rebind them for postgres:

	row := store.QueryRowContext(ctx, "SELECT name FROM question WHERE id = ?", id)

# Transactions

WithTx commits when the callback returns nil and rolls back otherwise:

	err := store.WithTx(ctx, func(tx *db.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE answer SET counter = counter + 1 WHERE id = ?", id)
		return err
	})

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

	question 1──* answer
	question 1──* vote
	answer   1──* vote

vote has PRIMARY KEY (session_token, question_id): a session holds at most
one vote per question. All foreign keys use ON DELETE CASCADE.

# Constraint Errors

IsUniqueViolation and IsForeignKeyViolation classify *pq.Error and
*sqlite.Error values by code.
*/
package db
