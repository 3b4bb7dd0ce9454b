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

// Config carries read-only resolution knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// FoldCase controls whether the direct-field tier matches property names
	// case-insensitively. The promoted-field tier always matches exactly.
	FoldCase bool

	// Strict requires the declared value type of a resolved property to be
	// identical to the requested type. A mismatch under Strict is a
	// programming defect surfaced fatally at the fetch boundary; without
	// Strict, an assignable (covariant) declared type is accepted and an
	// incompatible one fails silently as not-found.
	Strict bool

	// Methods controls whether zero-argument getter methods ("Name",
	// "GetName") participate in resolution after the field tiers.
	Methods bool

	// MaxUnwrap limits pointer unwrapping depth when locating the underlying
	// struct type. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// SkipNilCheck asserts that the call site never passes a nil payload,
	// skipping the nil guard for a minor gain. Passing nil under this
	// assertion is undefined behavior, not a handled error.
	SkipNilCheck bool
}
