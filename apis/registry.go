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

package apis

import "reflect"

// Registry provides pre-compiled accessor bindings for known (type, property)
// pairs, so well-known payload shapes skip reflection at fetch time.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register compiles and stores a binding for the named property on t.
	// Implementations should be idempotent for repeated (t, name) pairs.
	Register(t reflect.Type, name string) error
	// Lookup returns the binding for (t, name) if present.
	Lookup(t reflect.Type, name string) (Binding, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered bindings.
	Count() int
	// Reset clears all registered bindings.
	Reset()
}

// Entry is a single registered (type, property) pair in a Registry snapshot.
type Entry struct {
	// Type is the concrete runtime type the binding was compiled for.
	Type reflect.Type
	// Name is the property name.
	Name string
}
