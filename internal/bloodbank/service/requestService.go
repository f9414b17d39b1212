package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/store"
	"github.com/avvvet/bloodbank-services/internal/comm"
)

type RequestService struct {
	requestStore *store.RequestStore
	events       EventPublisher
}

func NewRequestService(requestStore *store.RequestStore, events EventPublisher) *RequestService {
	return &RequestService{
		requestStore: requestStore,
		events:       events,
	}
}

func (s *RequestService) ListRequests(ctx context.Context) ([]*models.Request, error) {
	return s.requestStore.GetRequests(ctx)
}

func (s *RequestService) SubmitRequest(ctx context.Context, form models.RequestForm) (int64, error) {
	id, err := s.requestStore.CreateRequest(ctx, form)
	if err != nil {
		return 0, err
	}

	publish(s.events, comm.EventRequestCreated, comm.RequestCreated{ID: id, RequestForm: form})
	return id, nil
}

// UpdateStatus writes status to request id. Any valid status may replace any
// other. An id with no row is not an error; nothing is announced for it.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, status models.Status) (models.StatusChange, error) {
	change := models.StatusChange{ID: id, Status: status}

	affected, err := s.requestStore.UpdateStatus(ctx, id, status)
	if err != nil {
		return change, err
	}

	if affected == 0 {
		log.Warnf("status update for request %d matched no rows", id)
		return change, nil
	}

	publish(s.events, comm.EventRequestStatusUpdated, change)
	return change, nil
}
