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

package langlevel

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestFeatures(t *testing.T) {
	tests := []struct {
		name    string
		release string
		preview bool
		want    Features
	}{{
		name: "default_is_latest",
		want: Features{SealedTypes: true, PatternSwitch: true, RecordPatterns: true, UnnamedPatterns: true},
	}, {
		name:    "legacy",
		release: "1.8",
		want:    Features{},
	}, {
		name:    "preview_before_introduction",
		release: "14",
		preview: true,
		want:    Features{},
	}, {
		name:    "sealed_preview",
		release: "15",
		preview: true,
		want:    Features{SealedTypes: true},
	}, {
		name:    "sealed_preview_disabled",
		release: "16",
		want:    Features{},
	}, {
		name:    "sealed_stable",
		release: "17",
		want:    Features{SealedTypes: true},
	}, {
		name:    "patterns_preview",
		release: "19",
		preview: true,
		want:    Features{SealedTypes: true, PatternSwitch: true, RecordPatterns: true},
	}, {
		name:    "patterns_stable",
		release: "21",
		want:    Features{SealedTypes: true, PatternSwitch: true, RecordPatterns: true},
	}, {
		name:    "unnamed_preview",
		release: "21",
		preview: true,
		want:    Features{SealedTypes: true, PatternSwitch: true, RecordPatterns: true, UnnamedPatterns: true},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.release, tt.preview)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(l.Features(), tt.want))
		})
	}
}

func TestCheck(t *testing.T) {
	l, err := New("17", false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(l.Check("SealedTypes")))
	qt.Assert(t, qt.ErrorMatches(l.Check("PatternSwitch"),
		`Pattern Matching in Switch is a preview feature and disabled by default. Use --enable-preview to enable`))
	qt.Assert(t, qt.ErrorMatches(l.Check("RecordPatterns"),
		`Record Patterns is only available with source level 21 and above`))

	l, err = New("11", false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.ErrorMatches(l.Check("SealedTypes"),
		`Sealed Types is only available with source level 17 and above`))
}

func TestRelease(t *testing.T) {
	l, err := New("1.8", false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(l.Release(), "8"))
	qt.Assert(t, qt.IsFalse(l.AtLeast("21")))
	qt.Assert(t, qt.Equals(l.String(), "8"))

	l, err = New("", true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(l.String(), Latest+"+preview"))
	qt.Assert(t, qt.IsTrue(l.AtLeast("21")))

	_, err = New("seventeen", false)
	qt.Assert(t, qt.ErrorMatches(err, `invalid release "seventeen"`))
	_, err = New("99", false)
	qt.Assert(t, qt.ErrorMatches(err, `release 99 is not supported; use 8 to 22`))
}
