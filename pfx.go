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

package pfx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/builder"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/fetcher"
)

// init initializes the global pfx state.
func init() {
	// Initialize state with default cfg, reg, and res.
	s := &state{cfg: config.DefaultConfig(), pool: &sync.Map{}}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("pfx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("pfx: builder returned nil resolver")
)

// Fetch reads the named property of type T off obj using a process-wide,
// pooled Fetcher for (name, T). The pool lives in the current snapshot, so
// all callers of the same (name, T) pair share one accessor chain.
// This is a convenience wrapper around the global state.
func Fetch[T any](name string, obj any) (T, bool) {
	return FetcherFor[T](name).TryFetch(obj)
}

// FetcherFor returns the pooled Fetcher for (name, T) from the current
// snapshot, creating it on first use. Reconfiguring the global state
// publishes a fresh pool; fetchers obtained before that keep serving with
// the configuration they were built under.
func FetcherFor[T any](name string) *fetcher.Fetcher[T] {
	s := st.Load()
	k := poolKey{name: name, want: reflect.TypeFor[T]()}
	if v, ok := s.pool.Load(k); ok {
		return v.(*fetcher.Fetcher[T])
	}
	f := fetcher.New[T](name, s.cfg, s.res)
	if v, raced := s.pool.LoadOrStore(k, f); raced {
		return v.(*fetcher.Fetcher[T])
	}
	return f
}

// New constructs a call-site-owned Fetcher for the named property from the
// current snapshot. Options apply on top of the snapshot configuration, so a
// single call site can opt into strictness or skip the nil guard without
// affecting anyone else.
func New[T any](name string, opts ...config.Option) *fetcher.Fetcher[T] {
	s := st.Load()
	cfg := s.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	return fetcher.New[T](name, cfg, s.res)
}

// RegisterProperty pre-compiles a binding for the named property on t into
// the global registry, so the shape is served without reflection at fetch
// time. This is a convenience wrapper around the global reg.
func RegisterProperty(t reflect.Type, name string) error {
	return st.Load().reg.Register(t, name)
}

// SetAll explicitly sets all global pfx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res, next)
	} else {
		npres = true
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			res:  nres,
			bld:  nbld,
			pool: &sync.Map{},
			preg: npreg,
			pres: npres,
		},
	)
}

// Config returns the global pfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global pfx configuration to cfg.
// It rebuilds the global reg and res using the new configuration and
// publishes a fresh fetcher pool.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and res based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg, old.res, old.ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			bld:  b,
			pool: &sync.Map{},
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// Registry returns the global pfx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global pfx reg to reg and pins it: later SetConfig
// calls will not rebuild the registry until UnpinRegistry.
// It rebuilds the global res (unless pinned) so the registry strategy serves
// from the new reg.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			res:  nres,
			bld:  b,
			pool: &sync.Map{},
			preg: true,
			pres: old.pres,
		},
	)
}

// UnpinRegistry makes the global pfx reg rebuildable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pool: old.pool,
			preg: false,
			pres: old.pres,
		},
	)
}

// Resolver returns the global pfx res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global pfx res to res and pins it: later SetConfig
// calls will not rebuild the resolver until UnpinResolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  res,
			bld:  old.bld,
			pool: &sync.Map{},
			preg: old.preg,
			pres: true,
		},
	)
}

// UnpinResolver makes the global pfx res rebuildable again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			res:  old.res,
			bld:  old.bld,
			pool: old.pool,
			preg: old.preg,
			pres: false,
		},
	)
}

// Builder returns the global pfx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global pfx bld to b and rebuilds unpinned layers.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and res based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, old.res, old.ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			bld:  b,
			pool: &sync.Map{},
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// ExtAs returns the global pfx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global pfx state.
var st atomic.Pointer[state]

// poolKey identifies a pooled fetcher: one property name, one requested type.
type poolKey struct {
	name string
	want reflect.Type
}

// state is the global pfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global pfx configuration.
	cfg apis.Config
	// ext is the global pfx extension configuration.
	ext any
	// reg is the global pfx reg.
	reg apis.Registry
	// res is the global pfx res.
	res apis.Resolver
	// bld is the global pfx bld.
	bld apis.Builder
	// pool maps poolKey to the shared *fetcher.Fetcher for that pair.
	// Reconfiguration publishes a fresh pool so stale accessor chains are
	// not served under a new resolver or config.
	pool *sync.Map
	// preg indicates whether the reg is pinned (not rebuilt automatically).
	preg bool
	// pres indicates whether the res is pinned (not rebuilt automatically).
	pres bool
}
