package utils

import (
	"authbox/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound is returned by the lookup helpers when no row matches.
var ErrUserNotFound = errors.New("user not found")

// Expected schema:
//
//	CREATE TABLE users (
//	    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
//	    username TEXT NOT NULL UNIQUE,
//	    email TEXT,
//	    password_hash TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing DSN: %w", err)
	}

	config.MaxConns = 50
	config.MinConns = 2
	config.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func UsernameInUse(username string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)"

	var exists bool
	err := db.QueryRow(ctx, stmt, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking username: %w", err)
	}

	return exists, nil
}

func AddUser(username string, email string, passwordHash string, db *pgxpool.Pool) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id;"

	var id uuid.UUID
	err := db.QueryRow(ctx, stmt, username, email, passwordHash).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error adding user: %w", err)
	}

	return id, nil
}

func GetUserByUsername(username string, db *pgxpool.Pool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, username, COALESCE(email, ''), password_hash, created_at FROM users WHERE username = $1;"

	var u models.User
	row := db.QueryRow(ctx, stmt, username)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &u, nil
}

func GetUserByID(id string, db *pgxpool.Pool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, username, COALESCE(email, ''), password_hash, created_at FROM users WHERE id = $1;"

	var u models.User
	row := db.QueryRow(ctx, stmt, id)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &u, nil
}
