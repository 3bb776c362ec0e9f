package garden

import "github.com/ZamarianPatrick/oasis-backend/model"

type EventKind string

const (
	EventReplaced EventKind = "replaced"
	EventWatered  EventKind = "watered"
	EventRenamed  EventKind = "renamed"
)

type Event struct {
	Kind     EventKind    `json:"kind"`
	Plant    *model.Plant `json:"plant"`
	Previous *model.Plant `json:"previous,omitempty"`
}

// Notifier receives every committed change. Publish must not block.
type Notifier interface {
	Publish(e Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(Event) {}

func NopNotifier() Notifier {
	return nopNotifier{}
}
