package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/store"
)

type AdminService struct {
	adminStore *store.AdminStore
}

func NewAdminService(adminStore *store.AdminStore) *AdminService {
	return &AdminService{adminStore: adminStore}
}

// Login checks the credentials. Nothing is issued on success.
func (s *AdminService) Login(ctx context.Context, username, password any) (bool, error) {
	return s.adminStore.Authenticate(ctx, username, password)
}

// EnsureAdmin seeds the configured admin when it is missing.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	created, err := s.adminStore.Seed(ctx, models.Admin{Username: username, Password: password})
	if err != nil {
		return err
	}
	if created {
		log.Infof("admin %s seeded", username)
	}
	return nil
}
