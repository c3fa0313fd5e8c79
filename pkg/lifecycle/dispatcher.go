package lifecycle

import "sync"

// Event names the UI signals the binder reacts to.
type Event string

const (
	// EventTriggerActivated fires when the submit trigger is activated.
	EventTriggerActivated Event = "trigger.activated"
	// EventOverlayDismissed fires when the overlay hosting a modal form
	// closes.
	EventOverlayDismissed Event = "overlay.dismissed"
	// EventOutsideInteraction fires when the user interacts outside the
	// form.
	EventOutsideInteraction Event = "outside.interaction"
)

// Activation is the payload of EventTriggerActivated. Handlers call
// PreventDefault to suppress whatever platform default the trigger carries.
type Activation struct {
	defaultPrevented bool
}

// PreventDefault suppresses the trigger's default action.
func (a *Activation) PreventDefault() {
	a.defaultPrevented = true
}

// DefaultPrevented reports whether a handler suppressed the default action.
func (a *Activation) DefaultPrevented() bool {
	return a.defaultPrevented
}

// Dispatcher is a synchronous topic bus decoupling UI glue from the
// validation engine. Subscribe and Publish are safe for concurrent use;
// handlers run on the publishing goroutine.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[Event]map[int]func(any)
	next int
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[Event]map[int]func(any))}
}

// Subscribe registers fn for event and returns a token for Unsubscribe.
func (d *Dispatcher) Subscribe(event Event, fn func(payload any)) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	if d.subs[event] == nil {
		d.subs[event] = make(map[int]func(any))
	}
	d.subs[event][d.next] = fn
	return d.next
}

// Unsubscribe removes a previously registered handler. Unknown tokens are
// ignored.
func (d *Dispatcher) Unsubscribe(event Event, token int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs[event], token)
}

// Publish delivers payload to every handler of event.
func (d *Dispatcher) Publish(event Event, payload any) {
	d.mu.RLock()
	handlers := make([]func(any), 0, len(d.subs[event]))
	for _, fn := range d.subs[event] {
		handlers = append(handlers, fn)
	}
	d.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}

// PublishTriggerActivated publishes a trigger activation and reports whether
// any handler suppressed the default action.
func (d *Dispatcher) PublishTriggerActivated() bool {
	activation := &Activation{}
	d.Publish(EventTriggerActivated, activation)
	return activation.DefaultPrevented()
}

// PublishOverlayDismissed publishes an overlay dismissal.
func (d *Dispatcher) PublishOverlayDismissed() {
	d.Publish(EventOverlayDismissed, nil)
}

// PublishOutsideInteraction publishes an interaction outside the form.
func (d *Dispatcher) PublishOutsideInteraction() {
	d.Publish(EventOutsideInteraction, nil)
}
