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

package config

import (
	"dirpx.dev/pfx/apis"
)

const (
	// DefaultFoldCase represents the default for FoldCase.
	// When true, the direct-field tier matches names case-insensitively,
	// so minor naming drift across producer versions does not break resolution.
	DefaultFoldCase = true
	// DefaultStrict represents the default for Strict.
	// The permissive policy accepts covariant declared types and treats
	// incompatibilities as not-found.
	DefaultStrict = false
	// DefaultMethods represents the default for Methods.
	// Getter methods participate after the field tiers.
	DefaultMethods = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 4 should be sufficient for all practical pointer nesting.
	DefaultMaxUnwrap = 4
	// DefaultSkipNilCheck represents the default for SkipNilCheck.
	// Nil payloads are guarded against unless the call site opts out.
	DefaultSkipNilCheck = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		FoldCase:     DefaultFoldCase,
		Strict:       DefaultStrict,
		Methods:      DefaultMethods,
		MaxUnwrap:    DefaultMaxUnwrap,
		SkipNilCheck: DefaultSkipNilCheck,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFoldCase sets the FoldCase option.
func WithFoldCase(fold bool) Option {
	return func(c *apis.Config) {
		c.FoldCase = fold
	}
}

// WithStrict sets the Strict option.
// Under Strict, a declared-type mismatch is fatal at the fetch boundary.
func WithStrict(strict bool) Option {
	return func(c *apis.Config) {
		c.Strict = strict
	}
}

// WithMethods sets the Methods option.
func WithMethods(allow bool) Option {
	return func(c *apis.Config) {
		c.Methods = allow
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithSkipNilCheck sets the SkipNilCheck option.
// Only for call sites that can prove payloads are never nil.
func WithSkipNilCheck(skip bool) Option {
	return func(c *apis.Config) {
		c.SkipNilCheck = skip
	}
}
