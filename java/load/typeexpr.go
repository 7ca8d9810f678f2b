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

package load

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// ParseTypeExpr parses a type reference such as
//
//	p.Outer.Inner<String, List<? extends T>>[]
//
// Every node of the result is positioned at pos.
func ParseTypeExpr(s string, pos token.Pos) (*ast.TypeExpr, error) {
	p := &typeParser{src: s, pos: pos}
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.i:])
	}
	return t, nil
}

type typeParser struct {
	src string
	i   int
	pos token.Pos
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("invalid type %q: %s", p.src, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.i < len(p.src) && p.src[p.i] == ' ' {
		p.i++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.i < len(p.src) {
		return p.src[p.i]
	}
	return 0
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.i
	for p.i < len(p.src) {
		r := rune(p.src[p.i])
		if r >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '.' || r == '-' {
			p.i++
			continue
		}
		break
	}
	return p.src[start:p.i]
}

func (p *typeParser) typ() (*ast.TypeExpr, error) {
	if p.peek() == '?' {
		p.i++
		t := &ast.TypeExpr{Name: "?", Wildcard: true, Pos: p.pos}
		rest := strings.TrimLeft(p.src[p.i:], " ")
		for _, kw := range []string{"extends ", "super "} {
			if strings.HasPrefix(rest, kw) {
				p.i = len(p.src) - len(rest) + len(kw)
				bound, err := p.typ()
				if err != nil {
					return nil, err
				}
				if kw == "extends " {
					// Only upper bounds matter for erasure.
					t.Args = []*ast.TypeExpr{bound}
				}
			}
		}
		return t, nil
	}
	name := p.ident()
	if name == "" {
		return nil, p.errorf("missing type name")
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return nil, p.errorf("malformed name %q", name)
	}
	t := &ast.TypeExpr{Name: name, Pos: p.pos}
	if p.peek() == '<' {
		p.i++
		for {
			arg, err := p.typ()
			if err != nil {
				return nil, err
			}
			t.Args = append(t.Args, arg)
			c := p.peek()
			p.i++
			if c == '>' {
				break
			}
			if c != ',' {
				return nil, p.errorf("expected ',' or '>'")
			}
		}
	}
	for p.peek() == '[' {
		p.i++
		if p.peek() != ']' {
			return nil, p.errorf("expected ']'")
		}
		p.i++
		t.Dims++
	}
	return t, nil
}
