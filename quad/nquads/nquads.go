// Copyright 2014 The Cayley Authors. All rights reserved.
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

// Package nquads implements parsing the RDF 1.1 N-Quads like line-based syntax
// used to feed quads into a GraphPort implementation.
//
// Typed parsing recognizes plain, language-tagged and datatyped literals,
// IRIs and blank nodes, and will auto-convert recognized XSD datatypes to
// their closest native Go type.
//
// Raw parsing skips that conversion and keeps every term as the literal
// text that appeared on the line, which is useful for round-tripping a
// data set byte-for-byte.
package nquads

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/cayleygraph/shaclc/quad"
)

// AutoConvertTypedString allows converting TypedString values to native
// equivalents directly while parsing. It will call ParseValue on all
// TypedString values.
//
// If conversion error occurs, it will preserve the original TypedString value.
var AutoConvertTypedString = true

var DecodeRaw = false

func init() {
	quad.RegisterFormat(quad.Format{
		Name: "nquads",
		Ext:  []string{".nq", ".nt"},
		Mime: []string{"application/n-quads", "application/n-triples"},
		Reader: func(r io.Reader) quad.ReadCloser {
			return NewReader(r, DecodeRaw)
		},
		Writer: func(w io.Writer) quad.WriteCloser { return NewWriter(w) },
	})
}

// Reader implements N-Quad document parsing according to the RDF
// 1.1 N-Quads specification.
type Reader struct {
	r    *bufio.Reader
	line []byte
	raw  bool
}

// NewReader returns an N-Quad decoder that takes its input from the
// provided io.Reader. When raw is set, terms are kept verbatim instead of
// being converted to native Go types.
func NewReader(r io.Reader, raw bool) *Reader {
	return &Reader{r: bufio.NewReader(r), raw: raw}
}

// ReadQuad returns the next valid N-Quad as a quad.Quad, or an error.
func (dec *Reader) ReadQuad() (quad.Quad, error) {
	dec.line = dec.line[:0]
	var line []byte
	for {
		for {
			l, pre, err := dec.r.ReadLine()
			if err != nil {
				return quad.Quad{}, err
			}
			dec.line = append(dec.line, l...)
			if !pre {
				break
			}
		}
		if line = bytes.TrimSpace(dec.line); len(line) != 0 && line[0] != '#' {
			break
		}
		dec.line = dec.line[:0]
	}
	var (
		q   quad.Quad
		err error
	)
	if dec.raw {
		q, err = ParseRaw(string(line))
	} else {
		q, err = Parse(string(line))
	}
	if err != nil {
		return quad.Quad{}, fmt.Errorf("failed to parse %q: %v", dec.line, err)
	}
	if !q.IsValid() {
		return dec.ReadQuad()
	}
	return q, nil
}
func (dec *Reader) Close() error { return nil }

// term matches one subject/predicate/object/graph position: a quoted
// literal (with an optional language tag or datatype suffix), an IRI in
// angle brackets, or a blank node label.
var term = regexp.MustCompile(`^(?:` +
	`"((?:[^"\\]|\\.)*)"(?:@([A-Za-z][A-Za-z0-9-]*)|\^\^<((?:[^>\\]|\\.)*)>)?` +
	`|<((?:[^>\\]|\\.)*)>` +
	`|_:([A-Za-z0-9_:.-]+)` +
	`)`)

func skipSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func firstToken(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}

func nextTerm(s string) (val quad.Value, rest string, err error) {
	s = skipSpace(s)
	m := term.FindStringSubmatch(s)
	if m == nil {
		return nil, s, fmt.Errorf("expected a term, got %q", firstToken(s))
	}
	rest = s[len(m[0]):]
	switch {
	case m[4] != "":
		return quad.IRI(unescape(m[4])), rest, nil
	case m[5] != "":
		return quad.BlankId(m[5]), rest, nil
	default:
		lit := unescape(m[1])
		switch {
		case m[2] != "":
			return quad.LangString{Value: quad.String(lit), Lang: m[2]}, rest, nil
		case m[3] != "":
			ts := quad.TypedString{Value: quad.String(lit), Type: quad.IRI(unescape(m[3]))}
			if AutoConvertTypedString {
				if nv, cerr := ts.ParseValue(); cerr == nil {
					return nv, rest, nil
				}
			}
			return ts, rest, nil
		default:
			return quad.String(lit), rest, nil
		}
	}
}

func nextRawTerm(s string) (val quad.Value, rest string, err error) {
	s = skipSpace(s)
	m := term.FindStringSubmatch(s)
	if m == nil {
		return nil, s, fmt.Errorf("expected a term, got %q", firstToken(s))
	}
	rest = s[len(m[0]):]
	return quad.Raw(m[0]), rest, nil
}

func parseLine(line string, next func(string) (quad.Value, string, error)) (quad.Quad, error) {
	var q quad.Quad
	var err error
	if q.Subject, line, err = next(line); err != nil {
		return quad.Quad{}, err
	}
	if q.Predicate, line, err = next(line); err != nil {
		return quad.Quad{}, err
	}
	if q.Object, line, err = next(line); err != nil {
		return quad.Quad{}, err
	}
	line = skipSpace(line)
	if len(line) > 0 && line[0] != '.' {
		if q.Label, line, err = next(line); err != nil {
			return quad.Quad{}, err
		}
	}
	line = skipSpace(line)
	if len(line) == 0 || line[0] != '.' {
		return quad.Quad{}, fmt.Errorf("expected statement to end in '.', got %q", firstToken(line))
	}
	return q, nil
}

// Parse parses a single N-Quads statement line, converting recognized
// datatypes to their closest native Go representation.
func Parse(line string) (quad.Quad, error) {
	return parseLine(line, nextTerm)
}

// ParseRaw parses a single N-Quads statement line, keeping every term as
// the literal text that appeared in the input.
func ParseRaw(line string) (quad.Quad, error) {
	return parseLine(line, nextRawTerm)
}

func unescape(s string) string {
	hasEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			hasEscape = true
			break
		}
	}
	if !hasEscape {
		return s
	}
	r := []rune(s)
	buf := bytes.NewBuffer(make([]byte, 0, len(r)))
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' {
			buf.WriteRune(r[i])
			continue
		}
		i++
		if i >= len(r) {
			break
		}
		switch r[i] {
		case 't':
			buf.WriteByte('\t')
		case 'b':
			buf.WriteByte('\b')
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 'f':
			buf.WriteByte('\f')
		case '"':
			buf.WriteByte('"')
		case '\'':
			buf.WriteByte('\'')
		case '\\':
			buf.WriteByte('\\')
		case 'u':
			rc, perr := strconv.ParseInt(string(r[i+1:i+5]), 16, 32)
			if perr != nil {
				panic(fmt.Errorf("internal parser error: %v", perr))
			}
			buf.WriteRune(rune(rc))
			i += 4
		case 'U':
			rc, perr := strconv.ParseInt(string(r[i+1:i+9]), 16, 32)
			if perr != nil {
				panic(fmt.Errorf("internal parser error: %v", perr))
			}
			buf.WriteRune(rune(rc))
			i += 8
		default:
			buf.WriteRune(r[i])
		}
	}
	return buf.String()
}

// NewWriter returns an N-Quad encoder that writes its output to the
// provided io.Writer.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Writer implements N-Quad document generator according to the RDF
// 1.1 N-Quads specification.
type Writer struct {
	w   io.Writer
	err error
}

func (enc *Writer) writeValue(v quad.Value) {
	if enc.err != nil {
		return
	}
	_, enc.err = enc.w.Write([]byte(v.String() + " "))
}
func (enc *Writer) WriteQuad(q quad.Quad) error {
	enc.writeValue(q.Subject)
	enc.writeValue(q.Predicate)
	enc.writeValue(q.Object)
	if q.Label != nil {
		enc.writeValue(q.Label)
	}
	if enc.err != nil {
		return enc.err
	}
	_, enc.err = enc.w.Write([]byte(".\n"))
	return enc.err
}
func (enc *Writer) Close() error { return enc.err }
