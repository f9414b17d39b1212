package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/comm"
)

// EventPublisher receives change events. Implemented by the NATS broker and
// the in-process websocket hub.
type EventPublisher interface {
	Publish(ev comm.Event) error
}

// publish is best effort, a failed event never fails the mutation.
func publish(p EventPublisher, eventType string, data any) {
	if p == nil {
		return
	}

	ev, err := comm.NewEvent(eventType, data)
	if err != nil {
		log.Errorf("could not build %s event: %v", eventType, err)
		return
	}

	if err := p.Publish(ev); err != nil {
		log.Errorf("could not publish %s event %s: %v", eventType, ev.ID, err)
	}
}
