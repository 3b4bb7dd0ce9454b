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

// Package pfx provides cached, polymorphic property access over payload
// objects of unknown concrete shape.
//
// pfx is responsible for answering "read field X off this value" at high
// call frequency without paying full reflection cost on every invocation.
// The typical consumer is a diagnostics/event listener: producers emit
// payload objects whose concrete types differ across library versions, yet
// expose a property with the same name and a compatible value type. One
// logical lookup ("DisplayName" as string) must serve all of those shapes.
//
// # Design
//
// The core of pfx is the fetcher.Fetcher[T], a manually maintained
// polymorphic inline cache keyed by runtime type identity:
//
//   - The first time a runtime type flows through a Fetcher, the property is
//     resolved against that type and a reusable accessor is compiled and
//     bound to it.
//
//   - Each distinct type earns one node in an append-only chain. Later
//     fetches walk the chain: a type-identity check, then a bound closure
//     call. The common one-or-few-shape case is O(1).
//
//   - Shapes that do not expose the property are not cached; they
//     re-resolve on every call. Known-good shapes stay resolvable for the
//     cache's lifetime (no eviction).
//
// Resolution itself is a strategy chain coordinated by a Resolver:
//
//  1. If the payload type implements apis.Getter, the payload answers the
//     lookup itself (zero reflection).
//  2. If a binding was pre-registered for (type, property), the Registry
//     serves it without any search.
//  3. Fields declared directly on the payload's struct type, matched
//     case-insensitively so minor naming drift across producer versions
//     still resolves.
//  4. The full visible field set, including fields promoted through
//     embedded structs, matched exactly.
//  5. Zero-argument getter methods ("Name", "GetName"), if enabled.
//
// The first strategy that claims the name decides the outcome. The declared
// value type is then checked against the requested type T: the permissive
// policy (default) accepts covariant reads and treats incompatibilities as
// not-found; the strict policy requires an exact match and fails loudly,
// because an exact-type mismatch indicates a misconfigured call site rather
// than a legitimate payload-shape difference.
//
// Value and pointer payloads are distinct shapes: a struct boxed into an
// interface binds to the struct type, a pointer payload to the pointer
// type. Each gets its own compiled accessor; nothing is ever bound to a
// generic "any object" base.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Fetch[T](name string, obj any) (T, bool)
//     FetcherFor[T](name string) *fetcher.Fetcher[T]
//     New[T](name string, opts ...config.Option) *fetcher.Fetcher[T]
//     Registry() apis.Registry
//     Resolver() apis.Resolver
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetRegistry(reg apis.Registry)
//     SetResolver(res apis.Resolver)
//     UnpinRegistry()
//     UnpinResolver()
//     RegisterProperty(t reflect.Type, name string) error
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new snapshot
//     (rebuilding or reusing Registry / Resolver as needed), and then
//     atomically publishes that snapshot. SetRegistry / SetResolver pin
//     their layer: it is no longer rebuilt automatically until unpinned.
//     SetAll is the "hard reset" API, mainly used by tests.
//
//  3. Introspection:
//
//     Config(), Builder(), ExtAs[T](), Registry().Entries(),
//     Fetcher.Shapes(), etc.
//
// # Concurrency model
//
// Reads are wait-free: they load the current *state atomically and never
// take locks. Fetcher chains require no synchronization on the hot path:
// nodes are immutable after construction save for the single late-bound
// next pointer, written via compare-and-swap. First-use races are benign by
// construction: resolution is a pure function of (runtime type, property
// name), so two goroutines racing to extend a chain may each synthesize an
// equivalent node; whichever write wins serves correctly and the duplicate
// is discarded. The only acceptable waste is an occasional rebuilt node,
// never a wrong value.
//
// Writers (SetConfig, SetBuilder, ...) take a short build mutex, assemble a
// brand-new state struct, and publish it via an atomic pointer swap. The
// snapshot carries the fetcher pool, so a reconfiguration also retires all
// pooled accessor chains at once.
//
// # Usage pattern in a binary
//
// A typical listener does:
//
//  1. Construct its fetchers once, at registration time:
//
//     displayName := pfx.New[string]("DisplayName")
//
//  2. Optionally pre-register well-known payload shapes:
//
//     _ = pfx.RegisterProperty(reflect.TypeOf(&httpSpan{}), "DisplayName")
//
//  3. On every event, fetch:
//
//     if name, ok := displayName.TryFetch(payload); ok { ... }
//
//  4. In tests, call pfx.SetAll(...) to get deterministic snapshots.
//
// # Scope
//
// pfx is intentionally small. It does not support nested path access
// ("a.b.c"), write-back, or enumeration of unknown properties, and the
// accessor chain grows without bound: one entry per distinct shape per
// property, for the life of the cache. It only solves one job:
//
//	"Given a payload of unknown concrete shape, read the named property
//	 as type T, fast, and fail quietly when this shape doesn't carry it."
package pfx
