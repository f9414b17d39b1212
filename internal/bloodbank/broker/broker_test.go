package broker

import (
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/bloodbank-services/internal/comm"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "bloodbank.events.request.created", Subject(comm.EventRequestCreated))
	assert.Equal(t, "bloodbank.events.>", EventsTopic)
}

func TestHandleMessagesForwardsKnownEvents(t *testing.T) {
	var got []comm.Event
	b := NewBroker(nil, func(ev comm.Event) error {
		got = append(got, ev)
		return nil
	})

	ev, err := comm.NewEvent(comm.EventDonorCreated, map[string]any{"id": 1})
	require.NoError(t, err)
	data, err := json.Marshal(ev)
	require.NoError(t, err)

	b.handleMessages(&nats.Msg{Subject: Subject(ev.Type), Data: data})

	require.Len(t, got, 1)
	assert.Equal(t, ev.ID, got[0].ID)
	assert.JSONEq(t, `{"id":1}`, string(got[0].Data))
}

func TestHandleMessagesDropsUnknownAndMalformed(t *testing.T) {
	calls := 0
	b := NewBroker(nil, func(comm.Event) error {
		calls++
		return nil
	})

	b.handleMessages(&nats.Msg{Subject: "bloodbank.events.x", Data: []byte(`{"type":"donor.deleted"}`)})
	b.handleMessages(&nats.Msg{Subject: "bloodbank.events.x", Data: []byte(`not json`)})

	assert.Zero(t, calls)
}
