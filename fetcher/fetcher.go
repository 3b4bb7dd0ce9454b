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

package fetcher

import (
	"errors"
	"reflect"
	"sync/atomic"

	"dirpx.dev/pfx/apis"
)

// Fetcher reads one named property of type T off payload objects whose
// concrete shape is not known in advance. It is a manually maintained
// polymorphic inline cache: each distinct runtime type seen earns one node
// in an append-only chain, so the first fetch per shape pays resolution cost
// and every later fetch is a type-identity check plus a bound closure call.
//
// One Fetcher is owned by the call site that constructs it, typically once
// at listener-registration time, and is then shared across concurrent calls
// for the cache's (usually process-long) lifetime.
type Fetcher[T any] struct {
	// name is the logical property name, immutable after construction.
	name string
	// want is reflect.TypeFor[T](), the requested value type.
	want reflect.Type
	// cfg and res are captured at construction; resolution is a pure
	// function of (runtime type, name, want, cfg).
	cfg apis.Config
	res apis.Resolver
	// head roots the polymorphic accessor chain, created lazily on the
	// first successful resolution.
	head atomic.Pointer[node[T]]
	// mono holds the single-shape binding used by TryFetchKnown.
	mono atomic.Pointer[node[T]]
}

// node is an immutable binding of one concrete runtime type to its compiled
// accessor, plus a link to the node handling the next distinct type. The
// link is written at most meaningfully once; racing writers that lose the
// CAS simply discard their duplicate node.
type node[T any] struct {
	declaring reflect.Type
	bind      apis.Binding
	next      atomic.Pointer[node[T]]
}

// New constructs a Fetcher for the named property, resolving against res
// under cfg. The property name is fixed for the Fetcher's lifetime.
func New[T any](name string, cfg apis.Config, res apis.Resolver) *Fetcher[T] {
	return &Fetcher[T]{
		name: name,
		want: reflect.TypeFor[T](),
		cfg:  cfg,
		res:  res,
	}
}

// Name returns the property name this Fetcher reads.
func (f *Fetcher[T]) Name() string {
	return f.name
}

// TryFetch reads the property off obj, resolving and caching an accessor for
// obj's runtime type on first encounter.
//
// It returns (zero, false) for nil payloads (unless cfg.SkipNilCheck), for
// shapes that do not expose the property, and for shapes whose declared
// property type is incompatible under the permissive policy. Failed shapes
// are not cached: they re-resolve on every call, a documented trade-off that
// keeps the chain free of negative entries.
//
// Under cfg.Strict, a declared-type mismatch panics with
// apis.ErrIncompatibleType: it signals a misconfigured call site, not a
// runtime data condition.
func (f *Fetcher[T]) TryFetch(obj any) (T, bool) {
	var zero T
	if !f.cfg.SkipNilCheck && obj == nil {
		return zero, false
	}
	rt := reflect.TypeOf(obj)
	if rt == nil {
		return zero, false
	}

	v := reflect.ValueOf(obj)

	// Fast path: walk the chain by runtime type identity. Nodes are
	// immutable after construction, so no synchronization is needed here.
	for n := f.head.Load(); n != nil; n = n.next.Load() {
		if n.declaring == rt {
			return n.fetch(v, f.want)
		}
	}

	// Unseen shape: resolve and append exactly one node for rt.
	n, err := f.resolve(rt)
	if err != nil {
		if errors.Is(err, apis.ErrIncompatibleType) {
			panic(err)
		}
		return zero, false
	}
	f.link(n)
	return n.fetch(v, f.want)
}

// TryFetchKnown is the optimized single-shape variant for call sites that
// can prove only one concrete type will ever be passed. It builds and caches
// exactly one accessor bound to known, with no fallback chain: a payload of
// any other runtime type fails closed rather than growing state.
func (f *Fetcher[T]) TryFetchKnown(known reflect.Type, obj any) (T, bool) {
	var zero T
	if known == nil {
		return zero, false
	}
	if !f.cfg.SkipNilCheck && obj == nil {
		return zero, false
	}

	n := f.mono.Load()
	if n == nil {
		nn, err := f.resolve(known)
		if err != nil {
			if errors.Is(err, apis.ErrIncompatibleType) {
				panic(err)
			}
			return zero, false
		}
		if !f.mono.CompareAndSwap(nil, nn) {
			// Lost a benign first-use race; the published node is
			// functionally identical.
			n = f.mono.Load()
		} else {
			n = nn
		}
	}

	rt := reflect.TypeOf(obj)
	if rt != n.declaring {
		return zero, false
	}
	return n.fetch(reflect.ValueOf(obj), f.want)
}

// Shapes returns the number of distinct runtime types currently cached in
// the polymorphic chain. Chain growth is unbounded by design; this is the
// knob operators can watch.
func (f *Fetcher[T]) Shapes() int {
	count := 0
	for n := f.head.Load(); n != nil; n = n.next.Load() {
		count++
	}
	return count
}

// resolve binds an accessor for the named property on rt.
func (f *Fetcher[T]) resolve(rt reflect.Type) (*node[T], error) {
	b, err := f.res.Resolve(rt, f.name, f.want, f.cfg)
	if err != nil {
		return nil, err
	}
	return &node[T]{declaring: rt, bind: b}, nil
}

// link appends n to the chain. Racing appends are benign: resolution is a
// pure function of (runtime type, name), so whichever equivalent node wins
// the CAS serves correctly and the loser is discarded. A node for a type
// that got linked meanwhile is dropped without retry; n itself still serves
// the current call.
func (f *Fetcher[T]) link(n *node[T]) {
	if f.head.CompareAndSwap(nil, n) {
		return
	}
	for cur := f.head.Load(); ; {
		if cur.declaring == n.declaring {
			return // duplicate shape, drop ours
		}
		next := cur.next.Load()
		if next == nil {
			if cur.next.CompareAndSwap(nil, n) {
				return
			}
			next = cur.next.Load()
		}
		cur = next
	}
}

// fetch invokes the node's bound accessor. v must hold a value of the node's
// declaring type; the chain walk guarantees that before delegating.
func (n *node[T]) fetch(v reflect.Value, want reflect.Type) (T, bool) {
	var zero T
	raw, ok := n.bind.Get(v)
	if !ok || !raw.IsValid() {
		return zero, false
	}
	if out, ok := raw.Interface().(T); ok {
		return out, true
	}
	// Covariant reads through a named declared type (e.g. a field declared
	// []byte fetched as a defined byte-slice type) need an assignment step.
	// A nil interface-typed property also lands here: the plain assertion
	// above fails for it, but the property exists and its value is nil, so
	// the result is (zero, true), not a miss.
	if raw.Type().AssignableTo(want) {
		out := reflect.New(want).Elem()
		out.Set(raw)
		v, _ := out.Interface().(T)
		return v, true
	}
	return zero, false
}
