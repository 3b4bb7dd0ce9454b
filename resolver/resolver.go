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

package resolver

import (
	"reflect"

	"dirpx.dev/pfx/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent
// use provided strategies themselves are safe for concurrent TryBind calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
// The first strategy that claims a property name decides the outcome: its
// binding is checked against the requested value type and the chain stops,
// matching the two-tier search semantics (the found property is THE property).
type chain struct {
	strats []apis.Strategy
}

// Resolve runs strategies in order until one claims the name, then applies
// the compatibility policy against want.
//
// Policy: permissive accepts a declared type assignable to want (covariant
// read) and reports an incompatible one as ErrNotFound; strict requires the
// declared type to be identical to want and reports a mismatch as
// ErrIncompatibleType. Dynamically typed bindings (no declared type) defer
// the check to call time and pass through unchanged.
func (r chain) Resolve(t reflect.Type, name string, want reflect.Type, cfg apis.Config) (apis.Binding, error) {
	if t == nil || want == nil || name == "" {
		return apis.Binding{}, apis.ErrNotFound
	}
	for _, s := range r.strats {
		b, ok := s.TryBind(t, name, cfg)
		if !ok {
			continue
		}
		if b.Dynamic() {
			return b, nil
		}
		if cfg.Strict {
			if b.Value != want {
				return apis.Binding{}, apis.ErrIncompatibleType
			}
			return b, nil
		}
		if !b.Value.AssignableTo(want) {
			// Same-named property of an incompatible type: expected for
			// heterogeneous shapes, indistinguishable from absence.
			return apis.Binding{}, apis.ErrNotFound
		}
		return b, nil
	}
	return apis.Binding{}, apis.ErrNotFound
}
