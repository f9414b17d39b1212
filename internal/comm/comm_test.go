package comm

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent(EventRequestCreated, RequestCreated{ID: 7, RequestForm: models.RequestForm{PatientName: "Meera"}})
	require.NoError(t, err)

	_, err = uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventRequestCreated, ev.Type)
	assert.False(t, ev.Time.IsZero())

	var data map[string]any
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	assert.EqualValues(t, 7, data["id"])
	assert.Equal(t, "Meera", data["patient_name"])
	assert.Nil(t, data["units"])
}

func TestNewEventRejectsUnencodableData(t *testing.T) {
	_, err := NewEvent(EventDonorCreated, make(chan int))
	assert.Error(t, err)
}
