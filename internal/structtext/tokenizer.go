// Package structtext parses the brace-delimited key/value dialect used by
// the game server's creature, raid and NPC definition files.
//
// A file is a sequence of "Key = value" entries. Values are integers, quoted
// strings, bare words, parenthesized tuples, or brace groups; group elements
// may carry trailing "Key=value" attributes and nest further groups:
//
//	Name      = "dragon"
//	Flags     = {SeeInvisible, DistanceFighting}
//	Skills    = {(HitPoints, 1000, 1000, 1000, 0, 0, 0, 0)}
//	Inventory = {(3031, 80, 700), (3577, 3, 390)}
//
// Repeated keys are structurally meaningful (a raid declares many Race/Count
// pairs) so a parsed document is an ordered pair sequence, not a map.
package structtext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind discriminates parsed values.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindWord
	KindTuple
	KindGroup
)

// Value is one parsed right-hand side.
type Value struct {
	Kind  Kind
	Int   int64
	Str   string // KindString and KindWord
	Tuple []Value
	Group []Element
}

// Element is one entry of a brace group: a value plus any trailing
// attributes ("2854 Content={...}", "3031 Amount=40").
type Element struct {
	Value Value
	Attrs []Pair
}

// Pair is one key/value entry, in document order.
type Pair struct {
	Key   string
	Value Value
}

// Document is an ordered sequence of top-level pairs.
type Document struct {
	Pairs []Pair
}

// Get returns the first value for key.
func (d *Document) Get(key string) (Value, bool) {
	for _, p := range d.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// All returns every value for key, in order.
func (d *Document) All(key string) []Value {
	var vals []Value
	for _, p := range d.Pairs {
		if p.Key == key {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Int returns the first integer value for key.
func (d *Document) Int(key string) (int64, bool) {
	v, ok := d.Get(key)
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

// Str returns the first string or word value for key.
func (d *Document) Str(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok || (v.Kind != KindString && v.Kind != KindWord) {
		return "", false
	}
	return v.Str, true
}

// Parse tokenizes a whole file. Lines that do not form a "Key = value" entry
// (including comments) are skipped; a malformed value (unterminated string or
// group) is an error for the file.
func Parse(text string) (*Document, error) {
	s := &scanner{src: text}
	doc := &Document{}

	for {
		s.skipSpaceAndComments()
		if s.eof() {
			return doc, nil
		}
		if !isWordStart(s.peek()) {
			s.skipLine()
			continue
		}
		key := s.word()
		s.skipInlineSpace()
		if s.eof() || s.peek() != '=' {
			s.skipLine()
			continue
		}
		s.pos++ // '='
		s.skipInlineSpace()
		val, err := s.value()
		if err != nil {
			return nil, fmt.Errorf("value for %s: %w", key, err)
		}
		doc.Pairs = append(doc.Pairs, Pair{Key: key, Value: val})
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) skipLine() {
	for !s.eof() && s.peek() != '\n' {
		s.pos++
	}
}

func (s *scanner) skipInlineSpace() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

func (s *scanner) skipSpaceAndComments() {
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '#':
			s.skipLine()
		default:
			return
		}
	}
}

func isWordStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isWordByte(c byte) bool {
	return c == '_' || c == '-' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func (s *scanner) word() string {
	start := s.pos
	for !s.eof() && isWordByte(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// value parses one value. Groups and tuples may span lines; scalar values
// end at the line break.
func (s *scanner) value() (Value, error) {
	if s.eof() {
		return Value{}, fmt.Errorf("missing value")
	}
	switch c := s.peek(); {
	case c == '"':
		str, err := s.quoted()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Str: str}, nil
	case c == '{':
		return s.group()
	case c == '(':
		return s.tuple()
	case c == '-' || unicode.IsDigit(rune(c)):
		return s.number()
	case isWordStart(c):
		return Value{Kind: KindWord, Str: s.word()}, nil
	default:
		return Value{}, fmt.Errorf("unexpected character %q", c)
	}
}

func (s *scanner) quoted() (string, error) {
	s.pos++ // opening quote
	start := s.pos
	for !s.eof() {
		if s.peek() == '"' {
			str := s.src[start:s.pos]
			s.pos++
			return str, nil
		}
		s.pos++
	}
	return "", fmt.Errorf("unterminated string")
}

func (s *scanner) number() (Value, error) {
	start := s.pos
	if s.peek() == '-' {
		s.pos++
	}
	for !s.eof() && unicode.IsDigit(rune(s.peek())) {
		s.pos++
	}
	n, err := strconv.ParseInt(s.src[start:s.pos], 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("integer %q: %w", s.src[start:s.pos], err)
	}
	return Value{Kind: KindInt, Int: n}, nil
}

func (s *scanner) tuple() (Value, error) {
	s.pos++ // '('
	var elems []Value
	for {
		s.skipSpaceAndComments()
		if s.eof() {
			return Value{}, fmt.Errorf("unterminated tuple")
		}
		if s.peek() == ')' {
			s.pos++
			return Value{Kind: KindTuple, Tuple: elems}, nil
		}
		if s.peek() == ',' {
			s.pos++
			continue
		}
		v, err := s.value()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func (s *scanner) group() (Value, error) {
	s.pos++ // '{'
	var elems []Element
	for {
		s.skipSpaceAndComments()
		if s.eof() {
			return Value{}, fmt.Errorf("unterminated group")
		}
		switch s.peek() {
		case '}':
			s.pos++
			return Value{Kind: KindGroup, Group: elems}, nil
		case ',':
			s.pos++
		default:
			el, err := s.element()
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, el)
		}
	}
}

// element parses a group entry: a value optionally followed by Key=value
// attributes ("2854 Content={2853, 3031 Amount=40}").
func (s *scanner) element() (Element, error) {
	v, err := s.value()
	if err != nil {
		return Element{}, err
	}
	el := Element{Value: v}
	for {
		s.skipInlineSpace()
		if s.eof() || !isWordStart(s.peek()) {
			return el, nil
		}
		mark := s.pos
		key := s.word()
		s.skipInlineSpace()
		if s.eof() || s.peek() != '=' {
			// Not an attribute; back off so the group loop sees it.
			s.pos = mark
			return el, nil
		}
		s.pos++ // '='
		s.skipInlineSpace()
		av, err := s.value()
		if err != nil {
			return Element{}, err
		}
		el.Attrs = append(el.Attrs, Pair{Key: key, Value: av})
	}
}

// Attr returns the first attribute value for key on a group element.
func (e Element) Attr(key string) (Value, bool) {
	for _, p := range e.Attrs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Ints flattens a tuple of integers, skipping non-integer members.
func (v Value) Ints() []int64 {
	var out []int64
	for _, e := range v.Tuple {
		if e.Kind == KindInt {
			out = append(out, e.Int)
		}
	}
	return out
}

// Words collects the bare-word members of a group ("Flags = {A, B}").
func (v Value) Words() []string {
	var out []string
	for _, e := range v.Group {
		if e.Value.Kind == KindWord {
			out = append(out, e.Value.Str)
		}
	}
	return out
}

// String renders a value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return strconv.Quote(v.Str)
	case KindWord:
		return v.Str
	case KindTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindGroup:
		parts := make([]string, len(v.Group))
		for i, e := range v.Group {
			parts[i] = e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}
