package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/comm"
)

const (
	subjectPrefix = "bloodbank.events."

	// EventsTopic matches every bloodbank event subject.
	EventsTopic = subjectPrefix + ">"
)

// Broker moves change events through NATS so dashboards attached to any
// instance see changes made on every instance.
type Broker struct {
	Conn    *nats.Conn
	Forward func(comm.Event) error // delivers consumed events, usually ws.Ws.Publish
}

func NewBroker(conn *nats.Conn, forward func(comm.Event) error) *Broker {
	return &Broker{
		Conn:    conn,
		Forward: forward,
	}
}

func Subject(eventType string) string {
	return subjectPrefix + eventType
}

// Publish sends ev on its type subject.
func (b *Broker) Publish(ev comm.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	subject := Subject(ev.Type)
	if err := b.Conn.Publish(subject, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", subject, err)
		return err
	}

	return nil
}

// consume events from every instance
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	ev := comm.Event{}
	if err := json.Unmarshal(msgNats.Data, &ev); err != nil {
		log.Errorf("Error: malformed event on %s: %s", msgNats.Subject, err)
		return
	}

	switch ev.Type {
	case comm.EventDonorCreated, comm.EventRequestCreated, comm.EventRequestStatusUpdated:
		if b.Forward == nil {
			return
		}
		if err := b.Forward(ev); err != nil {
			log.Errorf("Error forwarding event %s: %s", ev.ID, err)
		}
	default:
		log.Warnf("Unknown event type %q on %s", ev.Type, msgNats.Subject)
	}
}
