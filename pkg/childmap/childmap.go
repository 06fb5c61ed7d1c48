// Package childmap defines the associative-container contract that
// dirtree nodes use to store their children, plus a default
// implementation. dirtree only ever talks to a Map through this
// interface, so the container is a swappable external collaborator
// rather than part of the locking/traversal protocol.
package childmap

import (
	"sort"
	"strings"
)

// Map is the contract a dirtree node's child container must satisfy.
// Implementations are not expected to be safe for concurrent use on
// their own: dirtree serializes all access to a node's Map behind that
// node's reader/writer lock.
type Map[V any] interface {
	// Size returns the number of entries.
	Size() int
	// Insert adds name -> v and reports true, or reports false without
	// modifying the map if name is already present.
	Insert(name string, v V) bool
	// Get returns the value stored under name, if any.
	Get(name string) (V, bool)
	// Remove deletes and returns the value stored under name, if any.
	Remove(name string) (V, bool)
	// Each calls fn once per entry, in unspecified order.
	Each(fn func(name string, v V))
}

// ordered is the default Map implementation: a plain Go map. The
// caller-supplied name strings are immutable in Go, so no defensive
// copy is needed to satisfy the "the container makes its own copies"
// clause of the contract.
type ordered[V any] struct {
	m map[string]V
}

// New returns a Map backed by a Go map.
func New[V any]() Map[V] {
	return &ordered[V]{m: make(map[string]V)}
}

func (c *ordered[V]) Size() int { return len(c.m) }

func (c *ordered[V]) Insert(name string, v V) bool {
	if _, exists := c.m[name]; exists {
		return false
	}
	c.m[name] = v
	return true
}

func (c *ordered[V]) Get(name string) (V, bool) {
	v, ok := c.m[name]
	return v, ok
}

func (c *ordered[V]) Remove(name string) (V, bool) {
	v, ok := c.m[name]
	if ok {
		delete(c.m, name)
	}
	return v, ok
}

func (c *ordered[V]) Each(fn func(name string, v V)) {
	for name, v := range c.m {
		fn(name, v)
	}
}

// SortedKeys returns every key in m in ascending lexicographic order.
func SortedKeys[V any](m Map[V]) []string {
	keys := make([]string, 0, m.Size())
	m.Each(func(name string, _ V) {
		keys = append(keys, name)
	})
	sort.Strings(keys)
	return keys
}

// List returns the canonical serialization of m's key set: keys sorted
// lexicographically, joined by a single comma, no trailing separator,
// empty string when m is empty.
func List[V any](m Map[V]) string {
	return strings.Join(SortedKeys(m), ",")
}
