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

// Package errors defines the diagnostics produced by the checker.
//
// A diagnostic is an error with a severity and a source span. Diagnostics are
// collected in a List; the engines never stop at the first problem.
package errors

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// New is a convenience wrapper for errors.New in the core library.
// It does not return a diagnostic.
func New(msg string) error {
	return errors.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Severity classifies a diagnostic.
type Severity int8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return fmt.Sprintf("Severity(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Error is the common diagnostic.
type Error interface {
	// Position returns the primary position of the diagnostic.
	Position() token.Pos

	// Span returns the source range the diagnostic refers to.
	Span() token.Span

	// Severity reports how severe the problem is.
	Severity() Severity

	// Error reports the error message without position information.
	Error() string

	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []interface{})
}

// Message is the message of a diagnostic, kept unformatted so callers can
// match on the format.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates a Message.
func NewMessagef(format string, args ...interface{}) Message {
	if false {
		// Let go vet know that we're expecting printf-like arguments.
		_ = fmt.Sprintf(format, args...)
	}
	return Message{format: format, args: args}
}

// Msg returns a printf-style format string and its arguments.
func (m *Message) Msg() (format string, args []interface{}) {
	return m.format, m.args
}

func (m *Message) Error() string {
	if len(m.args) == 0 {
		return m.format
	}
	return fmt.Sprintf(m.format, m.args...)
}

type diagnostic struct {
	Message
	span     token.Span
	severity Severity
	err      error
}

func (e *diagnostic) Position() token.Pos { return e.span.Start }
func (e *diagnostic) Span() token.Span    { return e.span }
func (e *diagnostic) Severity() Severity  { return e.severity }
func (e *diagnostic) Unwrap() error       { return e.err }

func (e *diagnostic) Error() string {
	msg := e.Message.Error()
	if e.err == nil {
		return msg
	}
	if msg == "" {
		return e.err.Error()
	}
	return msg + ": " + e.err.Error()
}

// Newf creates an error diagnostic at p.
func Newf(p token.Pos, format string, args ...interface{}) Error {
	return &diagnostic{
		Message: NewMessagef(format, args...),
		span:    token.SpanOf(p),
	}
}

// Warnf creates a warning diagnostic at p.
func Warnf(p token.Pos, format string, args ...interface{}) Error {
	return &diagnostic{
		Message:  NewMessagef(format, args...),
		span:     token.SpanOf(p),
		severity: SeverityWarning,
	}
}

// NewSpanf creates a diagnostic of the given severity covering span.
func NewSpanf(sev Severity, span token.Span, format string, args ...interface{}) Error {
	return &diagnostic{
		Message:  NewMessagef(format, args...),
		span:     span,
		severity: sev,
	}
}

// Wrapf creates an error diagnostic at p that wraps err.
func Wrapf(err error, p token.Pos, format string, args ...interface{}) Error {
	return &diagnostic{
		Message: NewMessagef(format, args...),
		span:    token.SpanOf(p),
		err:     err,
	}
}

// Promote converts a regular Go error to a diagnostic if it isn't already one.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case Error:
		return x
	default:
		return Wrapf(err, token.NoPos, "%s", msg)
	}
}

// WithSeverity returns a copy of err with the severity replaced.
func WithSeverity(err Error, sev Severity) Error {
	if err.Severity() == sev {
		return err
	}
	format, args := err.Msg()
	d := &diagnostic{
		Message:  NewMessagef(format, args...),
		span:     err.Span(),
		severity: sev,
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		d.err = u.Unwrap()
	}
	return d
}

// Append combines two errors, flattening Lists as necessary.
func Append(a, b error) error {
	var l List
	l.Add(a)
	l.Add(b)
	return l.Err()
}

// Errors reports the individual errors associated with an error, which is
// the error itself if there is only one or, if the underlying type is List,
// its individual elements.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var listErr List
	var errorErr Error
	switch {
	case As(err, &listErr):
		return listErr
	case As(err, &errorErr):
		return []Error{errorErr}
	default:
		return []Error{Promote(err, "")}
	}
}

// -----------------------------------------------------------------------------
// List

// List is an ordered list of diagnostics. The zero value for a List is an
// empty List ready to use.
type List []Error

// Add adds err to the list, flattening Lists. A nil err is ignored.
func (p *List) Add(err error) {
	switch x := err.(type) {
	case nil:
	case List:
		*p = append(*p, x...)
	case Error:
		*p = append(*p, x)
	default:
		var l List
		if As(err, &l) {
			*p = append(*p, l...)
			return
		}
		*p = append(*p, Promote(err, ""))
	}
}

// AddNewf adds an error diagnostic at pos.
func (p *List) AddNewf(pos token.Pos, format string, args ...interface{}) {
	*p = append(*p, Newf(pos, format, args...))
}

// AddWarnf adds a warning diagnostic at pos.
func (p *List) AddWarnf(pos token.Pos, format string, args ...interface{}) {
	*p = append(*p, Warnf(pos, format, args...))
}

// Reset resets a List to no errors.
func (p *List) Reset() { *p = (*p)[:0] }

// HasErrors reports whether p contains a diagnostic of error severity.
func (p List) HasErrors() bool {
	for _, e := range p {
		if e.Severity() == SeverityError {
			return true
		}
	}
	return false
}

func compare(a, b Error) int {
	if c := a.Position().Compare(b.Position()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Severity(), b.Severity()); c != 0 {
		return c
	}
	return cmp.Compare(a.Error(), b.Error())
}

// Sort sorts a List by position, then severity, then message. Entries without
// a position sort last.
func (p List) Sort() {
	slices.SortStableFunc(p, compare)
}

// Sanitize sorts the list and removes identical diagnostics.
func (p List) Sanitize() List {
	if len(p) == 0 {
		return p
	}
	a := slices.Clone(p)
	a.Sort()
	return slices.CompactFunc(a, func(x, y Error) bool {
		return compare(x, y) == 0
	})
}

// RemoveMultiples sorts a List and removes all but the first error per line.
func (p *List) RemoveMultiples() {
	p.Sort()
	var last token.Pos
	i := 0
	for _, e := range *p {
		pos := e.Position()
		if i == 0 || pos.Filename() != last.Filename() || pos.Line() != last.Line() {
			last = pos
			(*p)[i] = e
			i++
		}
	}
	*p = (*p)[:i]
}

// Error implements the error interface.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Config is used to configure Print.
type Config struct {
	// Format formats the given string and arguments and writes it to w.
	// It is used for all printing.
	Format func(w io.Writer, format string, args ...interface{})

	// Cwd is the current working directory. Filename positions are taken
	// relative to this path.
	Cwd string

	// ToSlash normalizes file paths in the output.
	ToSlash bool

	// WithSeverity prefixes each message with its severity.
	WithSeverity bool
}

// Print writes err to w, one diagnostic per line, as
//
//	file:line:col: severity: message
func Print(w io.Writer, err error, cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	for _, e := range Errors(err) {
		printError(w, e, cfg)
	}
}

// Details is a convenience wrapper for Print to return the diagnostics as a
// string.
func Details(err error, cfg *Config) string {
	var b strings.Builder
	Print(&b, err, cfg)
	return b.String()
}

func defaultFprintf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

func printError(w io.Writer, err Error, cfg *Config) {
	fprintf := cfg.Format
	if fprintf == nil {
		fprintf = defaultFprintf
	}
	pos := err.Span()
	if pos.IsValid() || pos.Start.Filename() != "" {
		s := pos.Start.String()
		if cfg.Cwd != "" {
			if rel, ok := strings.CutPrefix(s, cfg.Cwd); ok {
				s = strings.TrimLeft(rel, `/\`)
			}
		}
		if cfg.ToSlash {
			s = strings.ReplaceAll(s, `\`, "/")
		}
		fprintf(w, "%s: ", s)
	}
	if cfg.WithSeverity {
		fprintf(w, "%s: ", err.Severity())
	}
	format, args := err.Msg()
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil || len(args) == 0 {
		fprintf(w, "%s\n", err.Error())
		return
	}
	fprintf(w, format, args...)
	fprintf(w, "\n")
}
