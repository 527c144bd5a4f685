// SPDX-License-Identifier: Unlicense OR MIT

package event

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Kind is a typed event key. The type parameter P is the payload
	// delivered to subscribers of the kind.
	Kind[P any] struct {
		name string
	}

	// Hub fans out emitted payloads to the subscribers of a kind. A
	// Hub is not safe for concurrent use; all calls must happen on
	// the goroutine that delivers events.
	Hub struct {
		hook    Hook
		onError ErrorHandler
		subs    map[string][]*Subscription
	}

	// Subscription is the handle returned by On. It identifies one
	// registration; registering the same function twice yields two
	// subscriptions.
	Subscription struct {
		hub  *Hub
		name string
		fn   func(any) error
		live bool
	}

	// Hook is notified when a kind gains its first subscriber and
	// when it loses its last one.
	Hook interface {
		Activate(name string)
		Deactivate(name string)
	}

	// HookFuncs adapts a pair of functions to the Hook interface.
	// Nil fields are ignored.
	HookFuncs struct {
		OnActivate   func(name string)
		OnDeactivate func(name string)
	}

	// ErrorHandler receives failures of individual subscribers. The
	// error is always a *CallbackError.
	ErrorHandler func(err error)

	// CallbackError reports a subscriber that returned an error or
	// panicked.
	CallbackError struct {
		Kind string
		Err  error
	}

	// PanicError carries the value recovered from a panicking
	// subscriber.
	PanicError struct {
		Value any
	}
)

// NewKind returns the typed key for name. Kinds with equal names
// share subscribers, so a name must only ever be used with a single
// payload type.
func NewKind[P any](name string) Kind[P] {
	return Kind[P]{name: name}
}

// Name returns the dispatch name of k.
func (k Kind[P]) Name() string {
	return k.name
}

func (k Kind[P]) String() string {
	return k.name
}

// NewHub returns an empty hub. hook may be nil. A nil onError
// selects LogErrors with a no-op logger, which drops failures.
func NewHub(hook Hook, onError ErrorHandler) *Hub {
	if onError == nil {
		onError = LogErrors(zap.NewNop())
	}
	return &Hub{
		hook:    hook,
		onError: onError,
		subs:    make(map[string][]*Subscription),
	}
}

// On registers fn for k. When fn is the first subscriber of k the
// hub's Hook is activated for k before On returns.
func On[P any](h *Hub, k Kind[P], fn func(P) error) *Subscription {
	s := &Subscription{
		hub:  h,
		name: k.name,
		live: true,
		fn: func(payload any) error {
			return fn(payload.(P))
		},
	}
	h.subs[k.name] = append(h.subs[k.name], s)
	if len(h.subs[k.name]) == 1 && h.hook != nil {
		h.hook.Activate(k.name)
	}
	return s
}

// Emit calls every subscriber of k with payload, in registration
// order. Subscriptions removed while the emit is in progress are not
// called. A failing subscriber is reported to the hub's ErrorHandler
// and does not stop the remaining ones.
func Emit[P any](h *Hub, k Kind[P], payload P) {
	subs := h.subs[k.name]
	if len(subs) == 0 {
		return
	}
	for _, s := range slices.Clone(subs) {
		if !s.live {
			continue
		}
		if err := s.call(payload); err != nil {
			h.onError(&CallbackError{Kind: k.name, Err: err})
		}
	}
}

// Off removes s. It is a no-op if s is nil, belongs to another hub or
// was already removed. Removing the last subscriber of a kind
// deactivates the hub's Hook for that kind.
func (h *Hub) Off(s *Subscription) {
	if s == nil || s.hub != h || !s.live {
		return
	}
	subs := h.subs[s.name]
	i := slices.Index(subs, s)
	if i < 0 {
		return
	}
	s.live = false
	subs = slices.Delete(subs, i, i+1)
	if len(subs) > 0 {
		h.subs[s.name] = subs
		return
	}
	delete(h.subs, s.name)
	if h.hook != nil {
		h.hook.Deactivate(s.name)
	}
}

// Active returns the sorted names of kinds with at least one
// subscriber.
func (h *Hub) Active() []string {
	names := maps.Keys(h.subs)
	slices.Sort(names)
	return names
}

// Count returns the number of subscribers of the named kind.
func (h *Hub) Count(name string) int {
	return len(h.subs[name])
}

// Kind returns the name of the kind s is subscribed to.
func (s *Subscription) Kind() string {
	return s.name
}

// Active reports whether s is still registered.
func (s *Subscription) Active() bool {
	return s.live
}

// Unsubscribe is shorthand for removing s from its hub.
func (s *Subscription) Unsubscribe() {
	if s != nil {
		s.hub.Off(s)
	}
}

func (s *Subscription) call(payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return s.fn(payload)
}

// LogErrors returns the default ErrorHandler: failures are logged and
// emission continues.
func LogErrors(l *zap.Logger) ErrorHandler {
	return func(err error) {
		var ce *CallbackError
		if errors.As(err, &ce) {
			l.Error("event subscriber failed",
				zap.String("kind", ce.Kind), zap.Error(ce.Err))
			return
		}
		l.Error("event subscriber failed", zap.Error(err))
	}
}

func (f HookFuncs) Activate(name string) {
	if f.OnActivate != nil {
		f.OnActivate(name)
	}
}

func (f HookFuncs) Deactivate(name string) {
	if f.OnDeactivate != nil {
		f.OnDeactivate(name)
	}
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("event: %s subscriber: %v", e.Kind, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
