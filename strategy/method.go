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

// NewMethodStrategy creates an apis.Strategy that resolves properties
// exposed as zero-argument, single-result getter methods: "Name", then
// "GetName". Methods are looked up on the concrete runtime type, so getters
// with pointer receivers resolve only for pointer payloads.
func NewMethodStrategy() apis.Strategy {
	return methodStrategy{}
}

// methodStrategy is the last resolution tier; disabled via Config.Methods.
type methodStrategy struct{}

// Ensure methodStrategy implements apis.Strategy.
var _ apis.Strategy = (*methodStrategy)(nil)

// TryBind binds a getter method for name on t.
func (methodStrategy) TryBind(t reflect.Type, name string, cfg apis.Config) (apis.Binding, bool) {
	if !cfg.Methods || t == nil || name == "" {
		return apis.Binding{}, false
	}
	m, ok := getterMethod(t, name)
	if !ok {
		m, ok = getterMethod(t, "Get"+name)
	}
	if !ok {
		return apis.Binding{}, false
	}
	return apis.Binding{
		Declaring: t,
		Value:     m.Type.Out(0),
		Get: func(v reflect.Value) (reflect.Value, bool) {
			// A typed-nil pointer receiver would make the value-method
			// wrapper dereference nil; report a miss like the field path.
			if v.Kind() == reflect.Ptr && v.IsNil() {
				return reflect.Value{}, false
			}
			return m.Func.Call([]reflect.Value{v})[0], true
		},
	}, true
}

// getterMethod finds an exported method with a getter signature:
// one input (the receiver), one result.
func getterMethod(t reflect.Type, name string) (reflect.Method, bool) {
	m, ok := t.MethodByName(name)
	if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
		return reflect.Method{}, false
	}
	return m, true
}
