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

// Package envflag fills flag structs from comma-separated environment
// variables such as SEALCHECK_DEBUG=log=2,strict.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable as input.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse initializes the fields in flags from their struct tags and then from
// env, a comma-separated list of name=value pairs.
//
// A field tag may set a default other than the zero value, as in
// `envflag:"default:true"`, rename the flag with `envflag:"name:foo"`, or
// mark it `envflag:"deprecated"`, after which only its default value may be
// set.
//
// Names are case insensitive and default to the lower-cased field name. A
// boolean flag without a value is set to true. Booleans are parsed with
// [strconv.ParseBool], integers with [strconv.Atoi].
func Parse[T any](flags *T, env string) error {
	fs, err := newFlagSet(reflect.ValueOf(flags).Elem())
	if err != nil {
		return err
	}
	var errs []error
	for _, elem := range strings.Split(env, ",") {
		// Empty elements allow joining, as in os.Getenv(v)+",extra".
		if elem = strings.TrimSpace(elem); elem != "" {
			if err := fs.set(elem); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

type flag struct {
	value      reflect.Value
	deprecated bool
}

type flagSet map[string]*flag

func newFlagSet(fv reflect.Value) (flagSet, error) {
	fs := flagSet{}
	ft := fv.Type()
	for i := 0; i < ft.NumField(); i++ {
		field := ft.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.ToLower(field.Name)
		f := &flag{value: fv.Field(i)}
		tag, _ := field.Tag.Lookup("envflag")
		for _, t := range strings.Split(tag, ",") {
			if t == "" {
				continue
			}
			key, rest, hasRest := strings.Cut(t, ":")
			switch key {
			case "default":
				val, err := parseValue(name, field.Type.Kind(), rest)
				if err != nil {
					return nil, err
				}
				f.value.Set(reflect.ValueOf(val))
			case "name":
				name = strings.ToLower(rest)
			case "deprecated":
				if hasRest {
					return nil, fmt.Errorf("cannot have a value for deprecated tag")
				}
				f.deprecated = true
			default:
				return nil, fmt.Errorf("unknown envflag tag %q", t)
			}
		}
		fs[name] = f
	}
	return fs, nil
}

func (fs flagSet) set(elem string) error {
	name, str, hasValue := strings.Cut(elem, "=")
	f, ok := fs[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown flag %q", elem)
	}
	kind := f.value.Kind()
	var val any = true
	switch {
	case hasValue:
		var err error
		if val, err = parseValue(name, kind, str); err != nil {
			return err
		}
	case kind != reflect.Bool:
		// As with Go flags, -output=path has no short form.
		return fmt.Errorf("value needed for %s flag %q", kind, name)
	}
	if f.deprecated {
		if f.value.Interface() != val {
			return fmt.Errorf("cannot change default value of deprecated flag %q", name)
		}
		return nil
	}
	f.value.Set(reflect.ValueOf(val))
	return nil
}

func parseValue(name string, kind reflect.Kind, str string) (val any, err error) {
	switch kind {
	case reflect.Bool:
		val, err = strconv.ParseBool(str)
	case reflect.Int:
		val, err = strconv.Atoi(str)
	case reflect.String:
		val = str
	default:
		return nil, errInvalid{fmt.Errorf("unsupported kind %s", kind)}
	}
	if err != nil {
		return nil, errInvalid{fmt.Errorf("invalid %s value for %s: %v", kind, name, err)}
	}
	return val, nil
}

// ErrInvalid is returned when a flag value cannot be parsed.
var ErrInvalid = errors.New("invalid value")

type errInvalid struct{ error }

func (errInvalid) Is(err error) bool {
	return err == ErrInvalid
}
