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
	"strings"

	"dirpx.dev/pfx/apis"
	uref "dirpx.dev/pfx/utils/reflect"
)

// NewDirectFieldStrategy creates an apis.Strategy for fields declared
// directly on the payload's struct type. Embedded (promoted) fields are
// excluded here; they belong to the promoted-field tier. Name matching is
// case-insensitive when cfg.FoldCase is set, so minor naming drift across
// producer versions still resolves.
func NewDirectFieldStrategy() apis.Strategy {
	return directFieldStrategy{}
}

// directFieldStrategy is tier one of the property search: the common,
// intended case of a field the payload type itself declares.
type directFieldStrategy struct{}

// Ensure directFieldStrategy implements apis.Strategy.
var _ apis.Strategy = (*directFieldStrategy)(nil)

// TryBind scans the fields declared on t's underlying struct for a name match.
func (directFieldStrategy) TryBind(t reflect.Type, name string, cfg apis.Config) (apis.Binding, bool) {
	base, err := uref.Deref(t, cfg)
	if err != nil {
		return apis.Binding{}, false
	}
	for i := 0; i < base.NumField(); i++ {
		f := base.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if f.Name == name || (cfg.FoldCase && strings.EqualFold(f.Name, name)) {
			return fieldBinding(t, f, cfg), true
		}
	}
	return apis.Binding{}, false
}

// NewPromotedFieldStrategy creates an apis.Strategy over the full visible
// field set of the payload's struct type, including fields promoted through
// embedded structs. Matching is always exact and case-sensitive.
func NewPromotedFieldStrategy() apis.Strategy {
	return promotedFieldStrategy{}
}

// promotedFieldStrategy is tier two of the property search: less common but
// valid shapes that inherit the property from an embedded type.
type promotedFieldStrategy struct{}

// Ensure promotedFieldStrategy implements apis.Strategy.
var _ apis.Strategy = (*promotedFieldStrategy)(nil)

// TryBind looks the name up across the whole promoted field set of t.
func (promotedFieldStrategy) TryBind(t reflect.Type, name string, cfg apis.Config) (apis.Binding, bool) {
	base, err := uref.Deref(t, cfg)
	if err != nil {
		return apis.Binding{}, false
	}
	// FieldByName resolves promotion depth and reports ambiguity as a miss.
	f, ok := base.FieldByName(name)
	if !ok || !f.IsExported() {
		return apis.Binding{}, false
	}
	return fieldBinding(t, f, cfg), true
}

// fieldBinding compiles a reusable accessor for field f, bound to the
// concrete runtime type t. The pointer-deref path is baked into the closure
// so the binding serves both value and pointer payload shapes of t without
// re-deriving anything per call.
func fieldBinding(t reflect.Type, f reflect.StructField, cfg apis.Config) apis.Binding {
	index := f.Index
	return apis.Binding{
		Declaring: t,
		Value:     f.Type,
		Get: func(v reflect.Value) (reflect.Value, bool) {
			base, ok := uref.Indirect(v, cfg)
			if !ok {
				return reflect.Value{}, false
			}
			// A nil embedded pointer on the promotion path is a miss,
			// not a panic.
			out, err := base.FieldByIndexErr(index)
			if err != nil {
				return reflect.Value{}, false
			}
			return out, true
		},
	}
}
