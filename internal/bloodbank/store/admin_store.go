package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/db"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

type AdminStore struct {
	db *db.DB
}

func NewAdminStore(db *db.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Authenticate reports whether a row matches both username and password
// exactly. Both are compared as plaintext inside the query.
func (s *AdminStore) Authenticate(ctx context.Context, username, password any) (bool, error) {
	query := s.db.Rebind(`SELECT id FROM admin WHERE username = ? AND password = ?`)

	var id int64
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, username, password).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check admin credentials: %w", err)
	}

	return true, nil
}

// Seed inserts the admin row unless one with the same username exists.
func (s *AdminStore) Seed(ctx context.Context, a models.Admin) (bool, error) {
	query := s.db.Rebind(`
		INSERT INTO admin (username, password)
		SELECT ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM admin WHERE username = ?)
	`)

	var affected int64
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, a.Username, a.Password, a.Username)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("could not seed admin %s: %w", a.Username, err)
	}

	return affected > 0, nil
}
