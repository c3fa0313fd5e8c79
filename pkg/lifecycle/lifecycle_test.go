package lifecycle_test

import (
	"context"
	"sync"
	"testing"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/lifecycle"
	"github.com/vitalishapovalov/html-form-validation/pkg/validator"
)

const modalForm = `<form>
  <div class="form-input" data-validation="required" data-validation-type="email">
    <input type="text" name="email" value="nope">
    <div class="form-input__error"></div>
  </div>
</form>`

func newValidator(t *testing.T, options ...validator.Option) *validator.Validator {
	t.Helper()
	doc, err := dom.ParseString(modalForm)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := validator.New(doc, "form", options...)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func anyFieldMarked(t *testing.T, v *validator.Validator) bool {
	t.Helper()
	fields, err := v.Form().Fields(v.FieldsSelector())
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	for _, f := range fields {
		if f.IsMarkedIncorrect(v.Decor().IncorrectClass) {
			return true
		}
	}
	return false
}

func TestTriggerActivationRunsPassAndPreventsDefault(t *testing.T) {
	bus := lifecycle.NewDispatcher()
	v := newValidator(t)

	binder := lifecycle.Bind(context.Background(), bus, v)
	defer binder.Unbind()

	prevented := bus.PublishTriggerActivated()
	if !prevented {
		t.Fatalf("trigger handler must suppress the default action")
	}
	if !anyFieldMarked(t, v) {
		t.Fatalf("expected the pass to mark the failing field")
	}
}

func TestUnbindDetachesOnlyTrigger(t *testing.T) {
	bus := lifecycle.NewDispatcher()
	v := newValidator(t, validator.WithModal(true), validator.WithRemoveErrorOnFocusOut(true))

	binder := lifecycle.Bind(context.Background(), bus, v)

	bus.PublishTriggerActivated()
	if !anyFieldMarked(t, v) {
		t.Fatalf("expected markers after activation")
	}

	binder.Unbind()
	if binder.Bound() {
		t.Fatalf("expected binder unbound")
	}

	// The trigger is dead: a new activation neither runs a pass nor claims
	// the default action.
	v.ClearMarkers()
	if prevented := bus.PublishTriggerActivated(); prevented {
		t.Fatalf("unbound trigger must not prevent the default action")
	}
	if anyFieldMarked(t, v) {
		t.Fatalf("unbound trigger must not run a pass")
	}

	// The auxiliary observers survive unbinding.
	if _, err := v.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	bus.PublishOverlayDismissed()
	if anyFieldMarked(t, v) {
		t.Fatalf("overlay observer must keep clearing markers after unbind")
	}

	if _, err := v.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	bus.PublishOutsideInteraction()
	if anyFieldMarked(t, v) {
		t.Fatalf("focus-out observer must keep clearing markers after unbind")
	}
}

func TestObserversRequireOptIn(t *testing.T) {
	bus := lifecycle.NewDispatcher()
	v := newValidator(t)

	binder := lifecycle.Bind(context.Background(), bus, v)
	defer binder.Unbind()

	bus.PublishTriggerActivated()
	if !anyFieldMarked(t, v) {
		t.Fatalf("expected markers after activation")
	}

	// Without modal/focus-out opt-in these topics are inert.
	bus.PublishOverlayDismissed()
	bus.PublishOutsideInteraction()
	if !anyFieldMarked(t, v) {
		t.Fatalf("markers must survive without opted-in observers")
	}
}

func TestUnbindIsIdempotent(t *testing.T) {
	bus := lifecycle.NewDispatcher()
	v := newValidator(t)

	binder := lifecycle.Bind(context.Background(), bus, v)
	binder.Unbind()
	binder.Unbind()

	if binder.Bound() {
		t.Fatalf("expected binder to stay unbound")
	}
}

func TestDispatcherConcurrentPublish(t *testing.T) {
	bus := lifecycle.NewDispatcher()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(lifecycle.EventOutsideInteraction, func(any) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.PublishOutsideInteraction()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 16 {
		t.Fatalf("expected 16 deliveries, got %d", count)
	}
}
