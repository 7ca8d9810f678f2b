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

package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
)

// ParseInt parses a Java integer literal: decimal, hexadecimal (0x),
// octal (leading 0) or binary (0b), with optional underscores, an optional
// leading minus sign and an optional L suffix. Hexadecimal, octal and
// binary int literals denote two's complement bit patterns.
func ParseInt(s string) (d *apd.Decimal, long bool, err error) {
	lit := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	neg := false
	if rest, ok := strings.CutPrefix(lit, "-"); ok {
		neg, lit = true, strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(lit, "L"); ok {
		long, lit = true, rest
	} else if rest, ok := strings.CutSuffix(lit, "l"); ok {
		long, lit = true, rest
	}
	base := 10
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		base, lit = 16, lit[2:]
	case strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B"):
		base, lit = 2, lit[2:]
	case len(lit) > 1 && lit[0] == '0':
		base, lit = 8, lit[1:]
	}
	var b apd.BigInt
	if lit == "" || strings.ContainsAny(lit, "+-") {
		return nil, false, fmt.Errorf("invalid integer literal %q", s)
	}
	if _, ok := b.SetString(lit, base); !ok {
		return nil, false, fmt.Errorf("invalid integer literal %q", s)
	}
	d = apd.NewWithBigInt(&b, 0)

	limit, half := "4294967296", "2147483648"
	if long {
		limit, half = "18446744073709551616", "9223372036854775808"
	}
	if base != 10 {
		var l, h apd.BigInt
		l.SetString(limit, 10)
		h.SetString(half, 10)
		if b.Cmp(&h) >= 0 && b.Cmp(&l) < 0 {
			// Two's complement.
			d = apd.NewWithBigInt(new(apd.BigInt).Sub(&b, &l), 0)
		}
	}
	if neg {
		d.Neg(d)
	}
	return d, long, nil
}

// ParseChar parses a Java character literal, with or without the enclosing
// quotes, and returns its UTF-16 code unit as a number.
func ParseChar(s string) (*apd.Decimal, error) {
	lit := strings.TrimSpace(s)
	if len(lit) >= 2 && lit[0] == '\'' && lit[len(lit)-1] == '\'' {
		lit = lit[1 : len(lit)-1]
	}
	var r rune
	switch {
	case lit == "":
		return nil, fmt.Errorf("empty character literal")
	case strings.HasPrefix(lit, `\u`):
		v, err := strconv.ParseUint(strings.TrimLeft(lit[1:], "u"), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid character literal %q", s)
		}
		r = rune(v)
	case lit[0] == '\\':
		if len(lit) < 2 {
			return nil, fmt.Errorf("invalid character literal %q", s)
		}
		switch lit[1] {
		case 'b':
			r = '\b'
		case 't':
			r = '\t'
		case 'n':
			r = '\n'
		case 'f':
			r = '\f'
		case 'r':
			r = '\r'
		case 's':
			r = ' '
		case '"', '\'', '\\':
			r = rune(lit[1])
		default:
			v, err := strconv.ParseUint(lit[1:], 8, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid character literal %q", s)
			}
			r = rune(v)
		}
	default:
		var size int
		r, size = utf8.DecodeRuneInString(lit)
		if size != len(lit) || r > 0xFFFF {
			return nil, fmt.Errorf("invalid character literal %q", s)
		}
	}
	return apd.New(int64(r), 0), nil
}

// ParseString unquotes a Java string literal. Unquoted text is taken
// verbatim.
func ParseString(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

// Range is the value range of an integral primitive type.
type Range struct {
	Min, Max *apd.Decimal
}

// Ranges holds the ranges of the integral types a switch can select on.
var Ranges = map[string]Range{
	"byte":  {apd.New(-1<<7, 0), apd.New(1<<7-1, 0)},
	"short": {apd.New(-1<<15, 0), apd.New(1<<15-1, 0)},
	"char":  {apd.New(0, 0), apd.New(1<<16-1, 0)},
	"int":   {apd.New(-1<<31, 0), apd.New(1<<31-1, 0)},
}

// Contains reports whether d lies within r.
func (r Range) Contains(d *apd.Decimal) bool {
	return d.Cmp(r.Min) >= 0 && d.Cmp(r.Max) <= 0
}

// Key returns a string that is equal for constants with the same value.
func (c *Constant) Key() string {
	switch {
	case c.Value != nil:
		return "n:" + c.Value.Text('f')
	case c.Kind == ast.BoolConst:
		return "b:" + c.Str
	}
	return "s:" + c.Str
}
