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

package registry_test

import (
	"reflect"
	"testing"

	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/registry"
)

type span struct {
	DisplayName string
	Duration    int
}

type titled struct {
	name string
}

func (v titled) Title() string { return v.name }

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(span{})

	if err := reg.Register(typ, "DisplayName"); err != nil {
		t.Fatalf("Register(span, DisplayName): unexpected error: %v", err)
	}
	// Idempotent re-registration of the same (type, name) pair.
	if err := reg.Register(typ, "DisplayName"); err != nil {
		t.Fatalf("Register idempotent: unexpected error: %v", err)
	}

	b, ok := reg.Lookup(typ, "DisplayName")
	if !ok {
		t.Fatalf("Lookup(span, DisplayName): want a binding")
	}
	out, ok := b.Get(reflect.ValueOf(span{DisplayName: "x"}))
	if !ok || out.Interface() != "x" {
		t.Fatalf("binding Get = (%v,%v), want (x,true)", out, ok)
	}

	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}

	// Same type, second property: a distinct entry.
	if err := reg.Register(typ, "Duration"); err != nil {
		t.Fatalf("Register(span, Duration): %v", err)
	}
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}
}

func TestRegister_PointerAndMethodShapes(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	// A pointer type registers independently of its struct type.
	if err := reg.Register(reflect.TypeOf(&span{}), "DisplayName"); err != nil {
		t.Fatalf("Register(*span): %v", err)
	}
	if _, ok := reg.Lookup(reflect.TypeOf(span{}), "DisplayName"); ok {
		t.Fatalf("struct type must not alias the pointer registration")
	}

	// Getter-method properties compile through the method tier.
	if err := reg.Register(reflect.TypeOf(titled{}), "Title"); err != nil {
		t.Fatalf("Register(titled, Title): %v", err)
	}
	b, ok := reg.Lookup(reflect.TypeOf(titled{}), "Title")
	if !ok {
		t.Fatalf("Lookup(titled, Title): want a binding")
	}
	out, ok := b.Get(reflect.ValueOf(titled{name: "T"}))
	if !ok || out.Interface() != "T" {
		t.Fatalf("method binding Get = (%v,%v), want (T,true)", out, ok)
	}
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	if err := reg.Register(nil, "x"); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(span{}), ""); err != registry.ErrEmptyName {
		t.Fatalf("empty name: want ErrEmptyName, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(span{}), "Nope"); err != registry.ErrUnknownProperty {
		t.Fatalf("unknown property: want ErrUnknownProperty, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(42), "DisplayName"); err != registry.ErrUnknownProperty {
		t.Fatalf("non-struct: want ErrUnknownProperty, got %v", err)
	}
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(span{})

	if err := reg.Register(typ, "DisplayName"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(typ, "Duration"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	snap := reg.Entries()
	if len(snap) != 2 {
		t.Fatalf("Entries() = %d entries, want 2", len(snap))
	}
	seen := map[string]bool{}
	for _, e := range snap {
		if e.Type != typ {
			t.Fatalf("entry type = %v, want span", e.Type)
		}
		seen[e.Name] = true
	}
	if !seen["DisplayName"] || !seen["Duration"] {
		t.Fatalf("entries missing names: %v", seen)
	}

	reg.Reset()
	if reg.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", reg.Count())
	}
	if _, ok := reg.Lookup(typ, "DisplayName"); ok {
		t.Fatalf("Lookup after Reset must miss")
	}
}

func TestRegister_FoldedNamesCompileOnce(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(span{})

	// A folded spelling compiles against the same field but stores under
	// the spelling it was registered with.
	if err := reg.Register(typ, "displayname"); err != nil {
		t.Fatalf("Register folded: %v", err)
	}
	if _, ok := reg.Lookup(typ, "displayname"); !ok {
		t.Fatalf("Lookup must hit the registered spelling")
	}
	if _, ok := reg.Lookup(typ, "DisplayName"); ok {
		t.Fatalf("Lookup must not alias a different spelling")
	}
}
