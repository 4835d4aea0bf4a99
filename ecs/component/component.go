package component

import (
	"errors"
	"reflect"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID indexes a component store. 0 is never assigned.
type ComponentID uint32

// KindID is satisfied by every ComponentKind; World.Query takes a mix of them.
type KindID interface {
	ID() ComponentID
}

// ComponentKind is the typed key for one component store.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the Go type name of T, for logs and errors.
func (k ComponentKind[T]) Name() string { return KindName(k.id) }

// ComponentHandle is what component files export: one per component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent registers T and returns its handle. Call it from a package
// level var so ids are assigned once at init.
func NewComponent[T any]() ComponentHandle[T] {
	registry.Lock()
	defer registry.Unlock()
	registry.names = append(registry.names, reflect.TypeFor[T]().Name())
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ComponentID(len(registry.names))}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// KindName returns the registered type name for id, or "" for unknown ids.
func KindName(id ComponentID) string {
	registry.RLock()
	defer registry.RUnlock()
	if id == 0 || int(id) > len(registry.names) {
		return ""
	}
	return registry.names[id-1]
}

var registry struct {
	sync.RWMutex
	names []string
}
