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

// Package langlevel decides which language features are available for a
// given Java release.
package langlevel

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// Latest is the most recent release known to the checker. It is the
	// default release.
	Latest = "22"

	// Oldest is the oldest supported release.
	Oldest = "8"
)

// Features holds the gated language features.
//
// The feature tag gives the life cycle of a feature: the release in which it
// appeared as a preview and the release in which it became stable. The title
// tag is used in diagnostics.
// When adding, deleting, or modifying entries below, update
// cmd/sealcheck/cmd/help.go as well for `sealcheck help environment`.
type Features struct {
	SealedTypes     bool `feature:"preview:v15,stable:v17" title:"Sealed Types"`
	PatternSwitch   bool `feature:"preview:v17,stable:v21" title:"Pattern Matching in Switch"`
	RecordPatterns  bool `feature:"preview:v19,stable:v21" title:"Record Patterns"`
	UnnamedPatterns bool `feature:"preview:v21,stable:v22" title:"Unnamed Variables and Patterns"`
}

// A Level is a release together with the --enable-preview setting.
type Level struct {
	version  string // semver form, such as "v17"
	preview  bool
	features Features
	disabled map[string]*FeatureError
}

// A FeatureError reports the use of a feature that is not enabled.
type FeatureError struct {
	Title string

	// Stable is the release in which the feature became stable.
	Stable string

	// Preview reports whether the feature is a preview feature at the
	// selected release.
	Preview bool
}

func (e *FeatureError) Error() string {
	if e.Preview {
		return fmt.Sprintf("%s is a preview feature and disabled by default. Use --enable-preview to enable", e.Title)
	}
	return fmt.Sprintf("%s is only available with source level %s and above", e.Title, e.Stable)
}

// New returns the language level of release, such as "17" or "1.8". An empty
// release selects Latest.
func New(release string, preview bool) (*Level, error) {
	v, err := parseRelease(release)
	if err != nil {
		return nil, err
	}
	l := &Level{version: v, preview: preview}
	if err := l.init(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseRelease(release string) (string, error) {
	r := strings.TrimSpace(release)
	if r == "" {
		r = Latest
	}
	r = strings.TrimPrefix(r, "1.")
	n, err := strconv.Atoi(r)
	if err != nil {
		return "", fmt.Errorf("invalid release %q", release)
	}
	lo, _ := strconv.Atoi(Oldest)
	hi, _ := strconv.Atoi(Latest)
	if n < lo || n > hi {
		return "", fmt.Errorf("release %s is not supported; use %s to %s", release, Oldest, Latest)
	}
	return "v" + strconv.Itoa(n), nil
}

func (l *Level) init() error {
	l.disabled = map[string]*FeatureError{}
	fv := reflect.ValueOf(&l.features).Elem()
	ft := fv.Type()
	for i := 0; i < ft.NumField(); i++ {
		field := ft.Field(i)
		var preview, stable string
		for _, f := range strings.Split(field.Tag.Get("feature"), ",") {
			key, rest, _ := strings.Cut(f, ":")
			switch key {
			case "preview":
				preview = rest
			case "stable":
				stable = rest
			default:
				return fmt.Errorf("unknown feature tag %q", f)
			}
		}
		enabled := false
		switch {
		case stable != "" && semver.Compare(l.version, stable) >= 0:
			enabled = true
		case preview != "" && semver.Compare(l.version, preview) >= 0:
			enabled = l.preview
		}
		if enabled {
			fv.Field(i).SetBool(true)
			continue
		}
		l.disabled[field.Name] = &FeatureError{
			Title:   field.Tag.Get("title"),
			Stable:  strings.TrimPrefix(stable, "v"),
			Preview: preview != "" && semver.Compare(l.version, preview) >= 0,
		}
	}
	return nil
}

// Release returns the release number, such as "17".
func (l *Level) Release() string {
	return strings.TrimPrefix(l.version, "v")
}

// Preview reports whether preview features are enabled.
func (l *Level) Preview() bool { return l.preview }

// Features returns the features enabled at l.
func (l *Level) Features() Features {
	return l.features
}

// Check returns a *FeatureError if the feature with the given field name of
// Features is not enabled.
func (l *Level) Check(feature string) error {
	if e, ok := l.disabled[feature]; ok {
		return e
	}
	return nil
}

// AtLeast reports whether the release of l is release or later.
func (l *Level) AtLeast(release string) bool {
	return semver.Compare(l.version, "v"+strings.TrimPrefix(release, "1.")) >= 0
}

func (l *Level) String() string {
	if l.preview {
		return l.Release() + "+preview"
	}
	return l.Release()
}
