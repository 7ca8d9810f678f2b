// Copyright 2026 The Sealcheck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scdebug

import (
	"sync"

	"github.com/groovy/groovy-eclipse-sub013/internal/envflag"
)

// Flags holds the set of global SEALCHECK_DEBUG flags. It is initialized by
// Init.
var Flags Config

// Config holds the set of known SEALCHECK_DEBUG flags.
//
// When adding, deleting, or modifying entries below, update
// cmd/sealcheck/cmd/help.go as well for `sealcheck help environment`.
type Config struct {
	// Log sets the log level of the checker:
	//
	//	0: no logging
	//	1: progress per compilation unit
	//	2: engine decisions, such as permitted subtypes and coverage splits
	Log int

	// Strict promotes warnings to errors.
	Strict bool

	// SortDiags sorts diagnostics by position and removes duplicates.
	SortDiags bool `envflag:"default:true"`

	// IncompleteEnum warns about switch statements over an enum that neither
	// cover all constants nor have a default.
	IncompleteEnum bool
}

// Init initializes Flags. Note: this isn't named "init" because we don't
// always want it to be called (for example we don't want it to be called
// when running "sealcheck help"), and because we want the failure mode to be
// an error rather than a panic.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "SEALCHECK_DEBUG")
})
