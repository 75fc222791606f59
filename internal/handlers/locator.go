// Package handlers resolves handler identifiers to invocable handlers.
//
// Handler packages register a factory per callable from init(); the binary
// links the packages it ships with blank imports. Identifiers are resolved
// lazily at dispatch time, so a subcommand whose handler package is not
// linked can still be registered and listed in help.
package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/log"
)

// Handler performs the work of one subcommand. It receives the resolved
// options of the invocation and the diagnostic sink. Errors logged through
// the sink do not stop the handler; a returned error is fatal.
type Handler func(logger *log.Logger, opts dispatchers.Options) error

// Factory builds a handler. It runs only when the handler is resolved.
type Factory func() (Handler, error)

var (
	ErrHandlerNotFound     = errors.New("handler not found")
	ErrHandlerNotInvocable = errors.New("handler not invocable")
)

var (
	registry   = make(map[string]map[string]Factory)
	registryMu sync.RWMutex
)

// Register makes a handler factory available as namespace.callable.
// It panics on an empty or repeated registration.
func Register(namespace, callable string, factory Factory) {
	if namespace == "" || callable == "" || factory == nil {
		panic("handlers: Register requires a namespace, a callable and a factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	callables, ok := registry[namespace]
	if !ok {
		callables = make(map[string]Factory)
		registry[namespace] = callables
	}
	if _, dup := callables[callable]; dup {
		panic("handlers: Register called twice for " + namespace + "." + callable)
	}
	callables[callable] = factory
}

// RegisterFunc registers a handler that needs no construction.
func RegisterFunc(namespace, callable string, h Handler) {
	Register(namespace, callable, func() (Handler, error) { return h, nil })
}

// SplitID splits a handler identifier into namespace and callable at the last dot.
func SplitID(id string) (namespace, callable string, err error) {
	idx := strings.LastIndex(id, ".")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", fmt.Errorf("%w: malformed handler identifier %q (want namespace.Callable)", ErrHandlerNotFound, id)
	}
	return id[:idx], id[idx+1:], nil
}

// Resolve looks up the handler for id and builds it.
func Resolve(id string) (Handler, error) {
	namespace, callable, err := SplitID(id)
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	callables, ok := registry[namespace]
	var factory Factory
	if ok {
		factory = callables[callable]
	}
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no module named %q is linked into this build", ErrHandlerNotFound, namespace)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: module %q has no handler %q", ErrHandlerNotFound, namespace, callable)
	}

	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrHandlerNotInvocable, id, err)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %s resolved to nil", ErrHandlerNotInvocable, id)
	}
	return h, nil
}

// Namespaces returns the linked handler namespaces, sorted.
func Namespaces() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for ns := range registry {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// unregister removes a namespace. Tests only.
func unregister(namespace string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, namespace)
}
