package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps codec names to implementations. The zero value is ready to
// use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// Register adds a codec under its own name.
func (r *Registry) Register(c Codec) error {
	if c == nil {
		return ErrNilCodec
	}
	name := c.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codecs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCodec, name)
	}
	if r.codecs == nil {
		r.codecs = make(map[string]Codec)
	}
	r.codecs[name] = c
	return nil
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[name]
	return c, ok
}

// Names returns all registered codec names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered codecs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codecs)
}
