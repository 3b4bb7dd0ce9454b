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

// NewGetterStrategy creates an apis.Strategy that uses pfx.Getter.
func NewGetterStrategy() apis.Strategy {
	return getterStrategy{}
}

// getterStrategy is a zero-reflection fast path: if the payload type
// implements pfx.Getter, let the payload answer the lookup and stop the
// chain. The resulting binding is dynamically typed (Binding.Value is nil);
// value-type compatibility is decided per call, and a nil property value is
// reported as a miss.
type getterStrategy struct{}

// Ensure getterStrategy implements apis.Strategy.
var _ apis.Strategy = (*getterStrategy)(nil)

// getterType is the interface probed for on payload types.
var getterType = reflect.TypeOf((*apis.Getter)(nil)).Elem()

// TryBind checks whether t implements pfx.Getter and binds through it.
func (getterStrategy) TryBind(t reflect.Type, name string, _ apis.Config) (apis.Binding, bool) {
	if t == nil || !t.Implements(getterType) {
		return apis.Binding{}, false
	}
	return apis.Binding{
		Declaring: t,
		Value:     nil, // dynamic: checked per call
		Get: func(v reflect.Value) (reflect.Value, bool) {
			raw, ok := v.Interface().(apis.Getter).GetProperty(name)
			if !ok || raw == nil {
				return reflect.Value{}, false
			}
			return reflect.ValueOf(raw), true
		},
	}, true
}
