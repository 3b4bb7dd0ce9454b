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

import (
	"reflect"
)

// Strategy is a pluggable resolution step. A Resolver chains multiple
// strategies in order (e.g., Getter -> Registry -> DirectField ->
// PromotedField -> Method).
type Strategy interface {
	// TryBind attempts to bind an accessor for the named property on the
	// concrete runtime type t according to cfg.
	// It returns (binding, true) if this strategy claims the name;
	// otherwise (zero, false) to fall through to the next strategy.
	// A claim does not imply type compatibility: the chain applies the
	// compatibility policy against the requested value type afterwards.
	TryBind(t reflect.Type, name string, cfg Config) (Binding, bool)
}
