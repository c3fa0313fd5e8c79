package lifecycle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vitalishapovalov/html-form-validation/pkg/validator"
)

// BinderOption customises a Binder.
type BinderOption func(*Binder)

// WithBinderLogger injects the logger used for pass failures.
func WithBinderLogger(log zerolog.Logger) BinderOption {
	return func(b *Binder) {
		b.log = log
	}
}

// Binder connects a validator to the dispatcher: trigger activation runs a
// pass, and the validator's modal and focus-out settings attach the marker
// clearing observers.
type Binder struct {
	bus *Dispatcher
	v   *validator.Validator
	ctx context.Context
	log zerolog.Logger

	mu        sync.Mutex
	triggerID int
	bound     bool
}

// Bind subscribes the validation pass to trigger activation, suppressing the
// trigger's default action, and attaches the auxiliary observers the
// validator's configuration asks for.
//
// Unbind removes only the trigger subscription. The auxiliary observers stay
// attached for the dispatcher's lifetime; their clearing work is harmless
// once the trigger is gone.
func Bind(ctx context.Context, bus *Dispatcher, v *validator.Validator, options ...BinderOption) *Binder {
	if ctx == nil {
		ctx = context.Background()
	}

	b := &Binder{
		bus: bus,
		v:   v,
		ctx: ctx,
		log: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	b.triggerID = bus.Subscribe(EventTriggerActivated, func(payload any) {
		if activation, ok := payload.(*Activation); ok {
			activation.PreventDefault()
		}
		if _, err := b.v.Validate(b.ctx); err != nil {
			b.log.Warn().Err(err).Msg("validation pass aborted")
		}
	})
	b.bound = true

	if v.Modal() {
		bus.Subscribe(EventOverlayDismissed, func(any) {
			b.v.ClearMarkers()
		})
	}
	if v.RemoveErrorOnFocusOut() {
		bus.Subscribe(EventOutsideInteraction, func(any) {
			b.v.ClearMarkers()
		})
	}

	return b
}

// Unbind detaches the trigger subscription. Safe to call more than once.
func (b *Binder) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.bound {
		return
	}
	b.bus.Unsubscribe(EventTriggerActivated, b.triggerID)
	b.triggerID = 0
	b.bound = false
}

// Bound reports whether the trigger subscription is still attached.
func (b *Binder) Bound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bound
}
