package parseerror

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/apperrors"
)

// ValidationErrorHandler turns a validation payload into a display message.
type ValidationErrorHandler func(ve apperrors.ValidationError) string

// Registry maps "{domain}:{name}" keys to validation handlers. Registrations
// normally happen at startup; lookups are safe from any goroutine.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ValidationErrorHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]ValidationErrorHandler),
	}
}

// NewRegistryWithBuiltins creates a registry holding the built-in catalog.
func NewRegistryWithBuiltins() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Register sets the handler for key. The last registration for a key wins.
// Nil handlers are ignored.
func (r *Registry) Register(key string, h ValidationErrorHandler) {
	if h == nil {
		log.Warn().Str("key", key).Msg("ignoring nil validation error handler")
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[key]; exists {
		log.Debug().Str("key", key).Msg("replacing validation error handler")
	}
	r.handlers[key] = h
}

// RegisterMessage registers a handler that always returns msg.
func (r *Registry) RegisterMessage(key, msg string) {
	r.Register(key, fixedMessage(msg))
}

// Lookup returns the handler registered for key.
func (r *Registry) Lookup(key string) (ValidationErrorHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	cp := NewRegistry()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, h := range r.handlers {
		cp.handlers[k] = h
	}
	return cp
}

// Resolve returns the display message for ve: the registered handler's result,
// else the payload's own message, else defaultMessage.
func (r *Registry) Resolve(ve apperrors.ValidationError, defaultMessage string) string {
	if h, ok := r.Lookup(ve.Key()); ok {
		if msg := h(ve); msg != "" {
			return msg
		}
	}
	if ve.Message != "" {
		return ve.Message
	}
	return defaultMessage
}

func fixedMessage(msg string) ValidationErrorHandler {
	return func(apperrors.ValidationError) string {
		return msg
	}
}

var defaultRegistry = NewRegistryWithBuiltins()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterValidationErrorHandler registers h for key on the process-wide registry.
func RegisterValidationErrorHandler(key string, h ValidationErrorHandler) {
	defaultRegistry.Register(key, h)
}

// ResolveValidationError resolves ve against the process-wide registry.
func ResolveValidationError(ve apperrors.ValidationError, defaultMessage string) string {
	return defaultRegistry.Resolve(ve, defaultMessage)
}
