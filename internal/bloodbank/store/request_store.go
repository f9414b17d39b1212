package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/db"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

type RequestStore struct {
	db *db.DB
}

func NewRequestStore(db *db.DB) *RequestStore {
	return &RequestStore{db: db}
}

// GetRequests returns every request, newest first. id breaks ties between
// rows created within the same clock tick.
func (s *RequestStore) GetRequests(ctx context.Context) ([]*models.Request, error) {
	query := `
		SELECT id, patient_name, blood_group, units, hospital, city, contact, status, created_at
		FROM requests
		ORDER BY created_at DESC, id DESC
	`

	var requests []*models.Request
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		requests = make([]*models.Request, 0)

		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			rq := &models.Request{}
			err := rows.Scan(
				&rq.ID,
				&rq.PatientName,
				&rq.BloodGroup,
				&rq.Units,
				&rq.Hospital,
				&rq.City,
				&rq.Contact,
				&rq.Status,
				&rq.CreatedAt,
			)
			if err != nil {
				return err
			}
			rq.Units = plainValue(rq.Units)
			rq.CreatedAt = plainValue(rq.CreatedAt)
			requests = append(requests, rq)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	return requests, nil
}

// CreateRequest inserts a request; status falls back to the column default.
func (s *RequestStore) CreateRequest(ctx context.Context, f models.RequestForm) (int64, error) {
	query := s.db.Rebind(`
		INSERT INTO requests (patient_name, blood_group, units, hospital, city, contact)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query,
			f.PatientName, f.BloodGroup, f.Units, f.Hospital, f.City, f.Contact,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("could not create request: %w", err)
	}

	return id, nil
}

// UpdateStatus sets the status of request id without checking that it
// exists. It returns the number of rows touched.
func (s *RequestStore) UpdateStatus(ctx context.Context, id int64, status models.Status) (int64, error) {
	query := s.db.Rebind(`UPDATE requests SET status = ? WHERE id = ?`)

	var affected int64
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, string(status), id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update request %d status: %w", id, err)
	}

	return affected, nil
}
