package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/db"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

type DonorStore struct {
	db *db.DB
}

func NewDonorStore(db *db.DB) *DonorStore {
	return &DonorStore{db: db}
}

func (s *DonorStore) GetDonors(ctx context.Context) ([]*models.Donor, error) {
	query := `
		SELECT id, name, age, blood_group, contact, city, last_donation_date
		FROM donors
		ORDER BY id
	`

	var donors []*models.Donor
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		donors = make([]*models.Donor, 0)

		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			d := &models.Donor{}
			err := rows.Scan(
				&d.ID,
				&d.Name,
				&d.Age,
				&d.BloodGroup,
				&d.Contact,
				&d.City,
				&d.LastDonationDate,
			)
			if err != nil {
				return err
			}
			d.Age = plainValue(d.Age)
			donors = append(donors, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}

	return donors, nil
}

func (s *DonorStore) CreateDonor(ctx context.Context, f models.DonorForm) (int64, error) {
	query := s.db.Rebind(`
		INSERT INTO donors (name, age, blood_group, contact, city, last_donation_date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query,
			f.Name, f.Age, f.BloodGroup, f.Contact, f.City, f.LastDonationDate,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("could not create donor: %w", err)
	}

	return id, nil
}
