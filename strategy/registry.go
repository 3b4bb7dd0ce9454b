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

package strategy

import (
	"reflect"

	"dirpx.dev/pfx/apis"
)

// NewRegistryStrategy creates an apis.Strategy that serves bindings
// pre-compiled into reg. Shapes registered up front skip the reflection-based
// search tiers entirely at fetch time.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided pfx.Registry keyed by (type, property).
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryBind returns the registered binding for (t, name), if any.
func (s *registryStrategy) TryBind(t reflect.Type, name string, _ apis.Config) (apis.Binding, bool) {
	if s.reg == nil || t == nil {
		return apis.Binding{}, false
	}
	return s.reg.Lookup(t, name)
}
