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

// Getter lets a payload type answer property lookups itself, bypassing
// reflection entirely.
//
// # Overview
//
// Getter is the primary, zero-reflection fast path of the resolution chain.
// When a payload's type implements Getter, the resolver MUST prefer this
// interface over any reflection-based strategy for that type. The resulting
// binding is dynamically typed: the requested value type is checked per call
// against what GetProperty actually returns, and a mismatch is reported as a
// miss, never as an error.
//
// # Contract
//
//   - GetProperty MUST be safe for concurrent calls from multiple goroutines.
//   - GetProperty MUST NOT perform blocking operations or I/O; it sits on
//     the hot path of a telemetry pipeline.
//   - For a given receiver state and name, GetProperty MUST be
//     deterministic: same inputs, same (value, ok) result.
//   - Returning ok=false means "this shape does not carry the property";
//     it is an expected outcome, not a failure.
//
// # Usage
//
//	type Span struct {
//	    attrs map[string]any
//	}
//
//	func (s *Span) GetProperty(name string) (any, bool) {
//	    v, ok := s.attrs[name]
//	    return v, ok
//	}
//
// Implementations SHOULD be cheap (a field read or map lookup); anything
// derived SHOULD be precomputed so repeated fetches stay constant-time.
type Getter interface {
	// GetProperty returns the current value of the named property, or
	// (nil, false) if this instance does not expose it.
	GetProperty(name string) (any, bool)
}
