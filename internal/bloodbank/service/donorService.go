package service

import (
	"context"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/store"
	"github.com/avvvet/bloodbank-services/internal/comm"
)

type DonorService struct {
	donorStore *store.DonorStore
	events     EventPublisher
}

func NewDonorService(donorStore *store.DonorStore, events EventPublisher) *DonorService {
	return &DonorService{
		donorStore: donorStore,
		events:     events,
	}
}

func (s *DonorService) ListDonors(ctx context.Context) ([]*models.Donor, error) {
	return s.donorStore.GetDonors(ctx)
}

// RegisterDonor stores the donor and announces it.
func (s *DonorService) RegisterDonor(ctx context.Context, form models.DonorForm) (int64, error) {
	id, err := s.donorStore.CreateDonor(ctx, form)
	if err != nil {
		return 0, err
	}

	publish(s.events, comm.EventDonorCreated, comm.DonorCreated{ID: id, DonorForm: form})
	return id, nil
}
