package typeinfo

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Info describes one registered type.
type Info struct {
	// Key is the stable export key the type is known by on the wire.
	Key string

	// Type is the registered Go type.
	Type reflect.Type

	// Description explains what the type is for.
	Description string

	factory func() any
}

// HasFactory reports whether the entry carries a custom constructor.
func (i *Info) HasFactory() bool {
	return i.factory != nil
}

// MarshalJSON renders the entry for snapshots and CLI output.
func (i Info) MarshalJSON() ([]byte, error) {
	typeName := ""
	if i.Type != nil {
		typeName = i.Type.String()
	}
	return json.Marshal(struct {
		Key         string `json:"key"`
		Type        string `json:"type"`
		Description string `json:"description,omitempty"`
		HasFactory  bool   `json:"has_factory"`
	}{
		Key:         i.Key,
		Type:        typeName,
		Description: i.Description,
		HasFactory:  i.factory != nil,
	})
}

// Option customizes a registration.
type Option func(*Info)

// WithDescription attaches a human-readable description to the entry.
func WithDescription(desc string) Option {
	return func(i *Info) {
		i.Description = desc
	}
}

// WithFactory installs a custom constructor used by New instead of
// allocating a zero value.
func WithFactory(fn func() any) Option {
	return func(i *Info) {
		i.factory = fn
	}
}

// Registry is a bidirectional table between export keys and Go types.
// The zero value is ready to use.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[string]*Info
	byType map[reflect.Type]*Info
}

// RegisterType adds t to the table under key. Duplicate keys and duplicate
// types are both conflicts.
func (r *Registry) RegisterType(key string, t reflect.Type, opts ...Option) error {
	if key == "" {
		return ErrEmptyKey
	}
	if t == nil {
		return fmt.Errorf("typeinfo: nil type for key %q", key)
	}

	info := &Info{Key: key, Type: t}
	for _, opt := range opts {
		opt(info)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	if prev, exists := r.byType[t]; exists {
		return fmt.Errorf("%w: %s already exported as %q", ErrDuplicateType, t, prev.Key)
	}

	if r.byKey == nil {
		r.byKey = make(map[string]*Info)
		r.byType = make(map[reflect.Type]*Info)
	}
	r.byKey[key] = info
	r.byType[t] = info
	return nil
}

// Lookup returns the entry registered under key.
func (r *Registry) Lookup(key string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.byKey[key]
	return info, ok
}

// LookupType returns the entry for a registered type.
func (r *Registry) LookupType(t reflect.Type) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.byType[t]
	return info, ok
}

// New constructs a fresh value of the type registered under key, using the
// entry's factory when present and a zero-value pointer otherwise.
func (r *Registry) New(key string) (any, error) {
	info, ok := r.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if info.factory != nil {
		return info.factory(), nil
	}
	return reflect.New(info.Type).Interface(), nil
}

// Keys returns all registered export keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.byKey))
	for key := range r.byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}

// Match returns entries whose export keys match a doublestar glob pattern,
// sorted by key.
func (r *Registry) Match(pattern string) ([]*Info, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern: %q", pattern)
	}

	var matched []*Info
	r.mu.RLock()
	for key, info := range r.byKey {
		if ok, _ := doublestar.Match(pattern, key); ok {
			matched = append(matched, info)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Key < matched[j].Key
	})
	return matched, nil
}

// Snapshot returns a copy of every entry, sorted by key. Safe to marshal
// and hand out without exposing the live table.
func (r *Registry) Snapshot() []Info {
	r.mu.RLock()
	entries := make([]Info, 0, len(r.byKey))
	for _, info := range r.byKey {
		entries = append(entries, *info)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}
