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

package builder_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/builder"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/registry"
)

var _ apis.Builder = builder.New()

// event is a plain struct resolved via reflection tiers.
type event struct {
	DisplayName string
}

// selfServing answers lookups itself, taking the fast path over every
// reflection tier.
type selfServing struct {
	DisplayName string
}

func (s selfServing) GetProperty(name string) (any, bool) {
	if name == "DisplayName" {
		return "from-getter", true
	}
	return nil, false
}

func TestBuildRegistry_Fresh(t *testing.T) {
	b := builder.New()
	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if reg == nil {
		t.Fatalf("BuildRegistry returned nil")
	}
	if reg.Count() != 0 {
		t.Fatalf("fresh registry Count() = %d, want 0", reg.Count())
	}
}

func TestBuildRegistry_MigratesPrevEntries(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := registry.New(cfg)
	if err := prev.Register(reflect.TypeOf(event{}), "DisplayName"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	next := b.BuildRegistry(cfg, prev, nil)
	if next.Count() != 1 {
		t.Fatalf("migrated Count() = %d, want 1", next.Count())
	}
	bind, ok := next.Lookup(reflect.TypeOf(event{}), "DisplayName")
	if !ok {
		t.Fatalf("migrated pair must be present in the new registry")
	}
	out, ok := bind.Get(reflect.ValueOf(event{DisplayName: "m"}))
	if !ok || out.Interface() != "m" {
		t.Fatalf("migrated binding Get = (%v,%v), want (m,true)", out, ok)
	}
}

func TestBuildResolver_ChainOrder(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	res := b.BuildResolver(cfg, reg, nil, nil)

	str := reflect.TypeOf("")

	// The self-serving fast path beats the direct field of the same name.
	bind, err := res.Resolve(reflect.TypeOf(selfServing{}), "DisplayName", str, cfg)
	if err != nil {
		t.Fatalf("Resolve(selfServing): %v", err)
	}
	if !bind.Dynamic() {
		t.Fatalf("self-serving type must resolve through the dynamic fast path")
	}
	out, ok := bind.Get(reflect.ValueOf(selfServing{DisplayName: "field"}))
	if !ok || out.Interface() != "from-getter" {
		t.Fatalf("Get = (%v,%v), want (from-getter,true)", out, ok)
	}

	// Plain structs fall through to the reflection tiers.
	bind, err = res.Resolve(reflect.TypeOf(event{}), "DisplayName", str, cfg)
	if err != nil {
		t.Fatalf("Resolve(event): %v", err)
	}
	out, ok = bind.Get(reflect.ValueOf(event{DisplayName: "e"}))
	if !ok || out.Interface() != "e" {
		t.Fatalf("Get = (%v,%v), want (e,true)", out, ok)
	}

	// Unknown names surface ErrNotFound through the whole chain.
	if _, err := res.Resolve(reflect.TypeOf(event{}), "Nope", str, cfg); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("unknown name: want ErrNotFound, got %v", err)
	}
}

func TestBuildResolver_UsesRegistry(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	cfg.FoldCase = false

	reg := b.BuildRegistry(cfg, nil, nil)
	if err := reg.Register(reflect.TypeOf(event{}), "DisplayName"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	res := b.BuildResolver(cfg, reg, nil, nil)

	bind, err := res.Resolve(reflect.TypeOf(event{}), "DisplayName", reflect.TypeOf(""), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if bind.Declaring != reflect.TypeOf(event{}) {
		t.Fatalf("Declaring = %v, want event", bind.Declaring)
	}
}

// TestBuildConcurrent smokes concurrent builds sharing a prev registry.
func TestBuildConcurrent(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := registry.New(cfg)
	if err := prev.Register(reflect.TypeOf(event{}), "DisplayName"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	workers := runtime.GOMAXPROCS(0) * 2
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				reg := b.BuildRegistry(cfg, prev, nil)
				if reg.Count() != 1 {
					t.Errorf("Count() = %d, want 1", reg.Count())
					return
				}
				res := b.BuildResolver(cfg, reg, nil, nil)
				if _, err := res.Resolve(reflect.TypeOf(event{}), "DisplayName", reflect.TypeOf(""), cfg); err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
