/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/strategy"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("pfx(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty property name is provided.
	ErrEmptyName = errors.New("pfx(registry): empty property name provided")
	// ErrUnknownProperty indicates that nothing on the type claims the
	// property name under any resolution tier, so no binding can be compiled.
	ErrUnknownProperty = errors.New("pfx(registry): type does not expose property")
)

// New constructs a Registry that compiles bindings according to cfg.
// Bindings are compiled eagerly at Register time through the reflection
// tiers (direct field, promoted field, getter method), so lookups at fetch
// time are a single map read.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{
		cfg: cfg,
		tiers: []apis.Strategy{
			strategy.NewDirectFieldStrategy(),
			strategy.NewPromotedFieldStrategy(),
			strategy.NewMethodStrategy(),
		},
	}
}

// key identifies a registered binding: one concrete type, one property name.
type key struct {
	t    reflect.Type
	name string
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration bindings are compiled under.
	cfg apis.Config
	// tiers are the resolution strategies used to compile bindings.
	tiers []apis.Strategy
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps key to apis.Binding.
	m sync.Map
	// count tracks the number of registered bindings.
	count int
}

// Register compiles and stores a binding for the named property on t.
// It is idempotent for repeated (type, name) pairs.
func (r *registry) Register(t reflect.Type, name string) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	k := key{t: t, name: name}

	// Fast read path: idempotency check without locking.
	if _, ok := r.m.Load(k); ok {
		return nil
	}

	// Compile outside the lock; compilation is a pure function of (t, name, cfg).
	b, ok := r.compile(t, name)
	if !ok {
		return ErrUnknownProperty
	}

	// Write path: guard with a mutex to keep the counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(k); ok {
		return nil
	}

	r.m.Store(k, b)
	r.count++
	return nil
}

// Lookup returns the binding for (t, name) if present.
func (r *registry) Lookup(t reflect.Type, name string) (apis.Binding, bool) {
	if t == nil || name == "" {
		return apis.Binding{}, false
	}
	if v, ok := r.m.Load(key{t: t, name: name}); ok {
		return v.(apis.Binding), true
	}
	return apis.Binding{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(k, _ any) bool {
		kk := k.(key)
		entries = append(entries, apis.Entry{
			Type: kk.t,
			Name: kk.name,
		})
		return true
	})
	return entries
}

// Count returns the number of registered bindings.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered bindings.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// compile runs the reflection tiers in order until one claims the name.
func (r *registry) compile(t reflect.Type, name string) (apis.Binding, bool) {
	for _, s := range r.tiers {
		if b, ok := s.TryBind(t, name, r.cfg); ok {
			return b, true
		}
	}
	return apis.Binding{}, false
}
