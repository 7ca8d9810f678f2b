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

// Package token defines source positions for resolved Java compilation units.
//
// Positions are handed to us by the external binder as line and column pairs;
// there is no source text, so unlike a scanner's positions there are no byte
// offsets.
package token

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Positions

// Position describes an arbitrary and printable source position within a file.
//
// A Position is valid if the line number is > 0.
type Position struct {
	Filename string // filename, if any
	Line     int    // line number, starting at 1
	Column   int    // column number, starting at 1
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a human-readable form of a position in one of several forms:
//
//	file:line:column    valid position with file name
//	line:column         valid position without file name
//	file                invalid position with file name
//	-                   invalid position without file name
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Pos is a compact encoding of a source position. The zero value is NoPos.
type Pos struct {
	file *File
	line int32
	col  int32
}

// NoPos is the zero value for Pos; there is no file and line information
// associated with it, and Pos.IsValid is false.
//
// NoPos is always larger than any valid Pos value.
var NoPos = Pos{}

// File returns the file that contains p or nil.
func (p Pos) File() *File { return p.file }

// Filename returns the name of the file that this position belongs to.
func (p Pos) Filename() string {
	if p.file == nil {
		return ""
	}
	return p.file.name
}

// Line returns the position's line number, starting at 1.
func (p Pos) Line() int { return int(p.line) }

// Column returns the position's column number, starting at 1.
func (p Pos) Column() int { return int(p.col) }

// IsValid reports whether the position carries a line.
func (p Pos) IsValid() bool { return p.line > 0 }

// Position unpacks the position information into a flat struct.
func (p Pos) Position() Position {
	return Position{
		Filename: p.Filename(),
		Line:     int(p.line),
		Column:   int(p.col),
	}
}

// String returns a human-readable form of a printable position.
func (p Pos) String() string {
	return p.Position().String()
}

// Compare returns an integer comparing two positions. The result will be 0 if
// p == p2, -1 if p < p2, and +1 if p > p2. NoPos is always larger than any
// valid position.
func (p Pos) Compare(p2 Pos) int {
	switch {
	case p == p2:
		return 0
	case !p.IsValid():
		if !p2.IsValid() {
			return cmp.Compare(p.Filename(), p2.Filename())
		}
		return +1
	case !p2.IsValid():
		return -1
	}
	if c := cmp.Compare(p.Filename(), p2.Filename()); c != 0 {
		return c
	}
	if c := cmp.Compare(p.line, p2.line); c != 0 {
		return c
	}
	return cmp.Compare(p.col, p2.col)
}

// -----------------------------------------------------------------------------
// Spans

// Span is a half-open source range. End may be NoPos, in which case the span
// is a single point.
type Span struct {
	Start Pos
	End   Pos
}

// SpanOf returns the point span at p.
func SpanOf(p Pos) Span { return Span{Start: p} }

// IsValid reports whether the span has a valid start.
func (s Span) IsValid() bool { return s.Start.IsValid() }

func (s Span) String() string {
	if !s.End.IsValid() || s.End == s.Start {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.line, s.End.col)
}

// -----------------------------------------------------------------------------
// File

// A File names a compilation unit. Positions refer to their file by pointer so
// that two units with the same name remain distinguishable.
type File struct {
	name string
}

// NewFile returns a new file with the given name.
func NewFile(filename string) *File {
	return &File{name: filename}
}

// Name returns the file name of f.
func (f *File) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Pos returns the position at the given line and column in f.
func (f *File) Pos(line, col int) Pos {
	if line <= 0 {
		return Pos{file: f}
	}
	if col <= 0 {
		col = 1
	}
	return Pos{file: f, line: int32(line), col: int32(col)}
}

// ParsePos parses a position of the form "line:col" or "line" relative to f.
// The empty string yields an invalid position in f.
func (f *File) ParsePos(s string) (Pos, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pos{file: f}, nil
	}
	lineStr, colStr, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line <= 0 {
		return NoPos, fmt.Errorf("invalid line in position %q", s)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col <= 0 {
			return NoPos, fmt.Errorf("invalid column in position %q", s)
		}
	}
	return f.Pos(line, col), nil
}

// ParseSpan parses "line:col" or "line:col-line:col".
func (f *File) ParseSpan(s string) (Span, error) {
	start, end, hasEnd := strings.Cut(s, "-")
	p, err := f.ParsePos(start)
	if err != nil {
		return Span{}, err
	}
	sp := Span{Start: p}
	if hasEnd {
		if sp.End, err = f.ParsePos(end); err != nil {
			return Span{}, err
		}
	}
	return sp, nil
}
