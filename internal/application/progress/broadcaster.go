package progress

import "sync"

// Event types pushed to connected listeners.
const (
	TypeLog      = "log"
	TypeProgress = "progress"
	TypeStatus   = "status"
)

type Event struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Value   int    `json:"value,omitempty"`
}

func Log(message string) Event { return Event{Type: TypeLog, Message: message} }

func Progress(value int) Event { return Event{Type: TypeProgress, Value: value} }

func Status(message string) Event { return Event{Type: TypeStatus, Message: message} }

// Listener receives broadcast events. Send reports an error once the
// underlying connection is gone; the broadcaster then drops the listener.
type Listener interface {
	Send(event Event) error
}

// Broadcaster fans events out to the currently connected listeners.
// All methods are safe for concurrent use. Delivery happens in
// registration order under the broadcaster lock, which also serializes
// writes to any single listener. There is no replay: listeners only see
// events published while they are registered.
type Broadcaster struct {
	mu        sync.Mutex
	listeners []Listener
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Register adds the listener to the live set and immediately sends it a
// status event confirming the connection.
func (b *Broadcaster) Register(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, listener)
	_ = listener.Send(Status("Connection established."))
}

// Unregister removes the listener. Removing a listener that is not
// registered is a no-op.
func (b *Broadcaster) Unregister(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, registered := range b.listeners {
		if registered == listener {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every registered listener in
// registration order. Listeners whose send fails are removed after the
// pass; a failed send never prevents delivery to the remaining listeners
// and never surfaces to the caller.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.listeners[:0]
	for _, listener := range b.listeners {
		if err := listener.Send(event); err != nil {
			continue
		}
		kept = append(kept, listener)
	}
	b.listeners = kept
}

// Len reports the current number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
