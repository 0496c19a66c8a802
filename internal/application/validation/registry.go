package validation

import (
	"reflect"
	"sync"
)

// Rule inspects a request and records violations
type Rule[T any] func(req T, errs *Errors)

// Registry maps a request type to its ordered rule set
type Registry struct {
	mu    sync.RWMutex
	rules map[reflect.Type][]func(any, *Errors)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{rules: make(map[reflect.Type][]func(any, *Errors))}
}

// Register appends rules for request type T. Registering the same type
// again adds to the existing set.
func Register[T any](r *Registry, rules ...Rule[T]) {
	t := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range rules {
		r.rules[t] = append(r.rules[t], func(req any, errs *Errors) {
			rule(req.(T), errs)
		})
	}
}

// HasRules reports whether any rule is registered for req's type
func (r *Registry) HasRules(req any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules[reflect.TypeOf(req)]) > 0
}

// Validate runs every rule for req's type and returns the collected
// violations as a *shared.ValidationError, or nil.
func (r *Registry) Validate(req any) error {
	r.mu.RLock()
	rules := r.rules[reflect.TypeOf(req)]
	r.mu.RUnlock()

	if len(rules) == 0 {
		return nil
	}

	errs := NewErrors()
	for _, rule := range rules {
		rule(req, errs)
	}
	return errs.Err()
}
