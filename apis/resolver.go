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

import (
	"errors"
	"reflect"
)

var (
	// ErrNotFound indicates that no strategy could bind the property on the
	// given type, or that the declared type was incompatible under the
	// permissive policy. It is an expected, recoverable outcome for
	// heterogeneous payload shapes.
	ErrNotFound = errors.New("pfx: property not found")
	// ErrIncompatibleType indicates that a property was found but its
	// declared value type does not exactly match the requested type under
	// the strict policy. This signals a misconfigured call site, not a
	// legitimate payload-shape difference, and is surfaced fatally.
	ErrIncompatibleType = errors.New("pfx: incompatible property type")
)

// Resolver coordinates strategies to bind property accessors for runtime
// types. Typical chain: GetterStrategy -> RegistryStrategy ->
// DirectFieldStrategy -> PromotedFieldStrategy -> MethodStrategy.
type Resolver interface {
	// Resolve binds an accessor for the named property on the concrete
	// runtime type t, validating the declared value type against want.
	//
	// It returns ErrNotFound when nothing on t claims the name (or the
	// declared type is not assignable to want under the permissive policy),
	// and ErrIncompatibleType when cfg.Strict is set and the declared type
	// differs from want. Resolvers must be safe for concurrent use.
	Resolve(t reflect.Type, name string, want reflect.Type, cfg Config) (Binding, error)
}
