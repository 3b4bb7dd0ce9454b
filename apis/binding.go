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

// Binding is an immutable, reusable accessor bound to one concrete runtime
// type. A Binding produced for type X must only ever be invoked on values
// whose runtime type is X; callers (the accessor chain) enforce that before
// delegating.
type Binding struct {
	// Declaring is the concrete runtime type the accessor was compiled for.
	// For a pointer payload this is the pointer type itself; a struct payload
	// boxed into an interface binds to the struct type. The two are distinct
	// shapes with distinct bindings.
	Declaring reflect.Type

	// Value is the declared value type of the property as seen on Declaring.
	// It is nil for dynamically typed bindings (e.g. the Getter fast path),
	// in which case compatibility is decided per call.
	Value reflect.Type

	// Get reads the property off v, which must hold a value of type
	// Declaring. ok is false when the read cannot be completed (nil embedded
	// pointer on the field path, or a dynamic binding reporting a miss).
	// Get is pure: it never mutates v and performs no I/O.
	Get func(v reflect.Value) (out reflect.Value, ok bool)
}

// Dynamic reports whether the binding's value type is only known per call.
func (b Binding) Dynamic() bool {
	return b.Value == nil
}
