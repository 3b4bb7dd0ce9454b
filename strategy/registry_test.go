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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/registry"
	"dirpx.dev/pfx/strategy"
)

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	conf := cfg()
	reg := registry.New(conf)

	typ := reflect.TypeOf(plain{})
	if err := reg.Register(typ, "DisplayName"); err != nil {
		t.Fatalf("Register(plain, DisplayName): %v", err)
	}

	s := strategy.NewRegistryStrategy(reg)

	b, ok := s.TryBind(typ, "DisplayName", conf)
	if !ok {
		t.Fatalf("registered pair should bind")
	}
	if got := get(t, b, plain{DisplayName: "warm"}); got != "warm" {
		t.Fatalf("Get = %v, want warm", got)
	}

	// Unregistered name and type fall through.
	if _, ok := s.TryBind(typ, "Other", conf); ok {
		t.Fatalf("unregistered name must fall through")
	}
	if _, ok := s.TryBind(reflect.TypeOf(outer{}), "DisplayName", conf); ok {
		t.Fatalf("unregistered type must fall through")
	}
}

func TestRegistryStrategy_NilInputs(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	if _, ok := s.TryBind(reflect.TypeOf(plain{}), "DisplayName", config.DefaultConfig()); ok {
		t.Fatalf("nil registry must fall through")
	}

	s = strategy.NewRegistryStrategy(registry.New(config.DefaultConfig()))
	if _, ok := s.TryBind(nil, "DisplayName", config.DefaultConfig()); ok {
		t.Fatalf("nil type must fall through")
	}
}
