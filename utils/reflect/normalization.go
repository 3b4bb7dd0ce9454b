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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotStruct indicates that the provided type (after unwrapping
	// pointers) is not a struct and therefore carries no fields.
	ErrReflectNotStruct = errors.New("reflect: type is not a struct")
)

// Deref unwraps pointer types according to config (MaxUnwrap) and returns the
// underlying struct type, or an error if none is found within the depth guard.
//
// Deref is how a concrete runtime type (Span, *Span, **Span) is normalized to
// the struct whose fields are searched. The accessor itself stays bound to
// the original concrete type; only field enumeration uses the base struct.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Deref(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i <= maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr:
			t = t.Elem()
		case reflect.Struct:
			return t, nil
		default:
			return nil, ErrReflectNotStruct
		}
	}

	// Depth guard exhausted without reaching a struct.
	return nil, ErrReflectNotStruct
}

// Indirect unwraps pointer values up to the config depth guard, mirroring
// Deref on the value side. ok is false when a nil pointer is encountered on
// the way down or the final value is not a struct.
func Indirect(v reflect.Value, cfg apis.Config) (reflect.Value, bool) {
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i <= maxUnwrap; i++ {
		switch v.Kind() {
		case reflect.Ptr:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		case reflect.Struct:
			return v, true
		default:
			return reflect.Value{}, false
		}
	}
	return reflect.Value{}, false
}
