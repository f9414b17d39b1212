package comm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

const (
	EventDonorCreated         = "donor.created"
	EventRequestCreated       = "request.created"
	EventRequestStatusUpdated = "request.status_updated"
)

// Event is a change notification emitted after a successful mutation.
type Event struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
	Time time.Time       `json:"time"`
}

func NewEvent(eventType string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:   uuid.New().String(),
		Type: eventType,
		Data: raw,
		Time: time.Now().UTC(),
	}, nil
}

// WSMessage is what dashboards may send over the socket.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "ping"
	Data     json.RawMessage `json:"data,omitempty"`
	SocketId string          `json:"socketid,omitempty"`
}

type DonorCreated struct {
	ID int64 `json:"id"`
	models.DonorForm
}

type RequestCreated struct {
	ID int64 `json:"id"`
	models.RequestForm
}
