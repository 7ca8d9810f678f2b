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

package typegraph

import "github.com/groovy/groovy-eclipse-sub013/java/token"

const langPackage = "java.lang"

type builtin struct {
	name   string
	kind   Kind
	flags  Flags
	supers []string
}

// builtins lists the java.lang types the analyses need to know about, in
// dependency order.
var builtins = []builtin{
	{name: "Object", kind: Class},
	{name: "CharSequence", kind: Interface},
	{name: "Comparable", kind: Interface},
	{name: "String", kind: Class, flags: Final, supers: []string{"Object", "CharSequence", "Comparable"}},
	{name: "Number", kind: Class, flags: Abstract, supers: []string{"Object"}},
	{name: "Integer", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Long", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Short", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Byte", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Double", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Float", kind: Class, flags: Final, supers: []string{"Number", "Comparable"}},
	{name: "Character", kind: Class, flags: Final, supers: []string{"Object", "Comparable"}},
	{name: "Boolean", kind: Class, flags: Final, supers: []string{"Object", "Comparable"}},
	{name: "Enum", kind: Class, flags: Abstract, supers: []string{"Object", "Comparable"}},
	{name: "Record", kind: Class, flags: Abstract, supers: []string{"Object"}},
}

var primitives = []struct{ name, box string }{
	{"int", "Integer"},
	{"long", "Long"},
	{"short", "Short"},
	{"byte", "Byte"},
	{"char", "Character"},
	{"boolean", "Boolean"},
	{"double", "Double"},
	{"float", "Float"},
}

func (g *Graph) addBuiltins() {
	for _, b := range builtins {
		n := g.add(&Node{
			Name:    langPackage + "." + b.name,
			Simple:  b.name,
			Kind:    b.kind,
			Flags:   b.flags | Builtin,
			File:    -1,
			Package: langPackage,
			Pos:     token.NoPos,
		})
		for _, s := range b.supers {
			n.Supers = append(n.Supers, Ref{ID: g.byName[langPackage+"."+s]})
			n.SuperExprs = append(n.SuperExprs, nil)
		}
	}
	g.object = g.byName[langPackage+".Object"]
	g.record = g.byName[langPackage+".Record"]
	g.enum = g.byName[langPackage+".Enum"]
	g.str = g.byName[langPackage+".String"]

	for _, p := range primitives {
		n := g.add(&Node{
			Name:   p.name,
			Simple: p.name,
			Kind:   Primitive,
			Flags:  Builtin | Final,
			File:   -1,
		})
		box := g.byName[langPackage+"."+p.box]
		g.box[n.ID] = box
		g.unbox[box] = n.ID
	}
}

// IsPrimitiveName reports whether name is a primitive type keyword.
func IsPrimitiveName(name string) bool {
	for _, p := range primitives {
		if p.name == name {
			return true
		}
	}
	return false
}
