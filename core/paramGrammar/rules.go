// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Consumption rules for the values of parameter and header file fields. A rule is applied right
// after its key token has been matched, pulls exactly the tokens its grammar needs from the
// scanner and either returns the words it read or the field's error kind. A failed rule never
// returns a partially filled Value.
package paramGrammar

import (
	"strconv"
	"strings"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/prmScanner"
)

type RuleKind int

const (
	Scalar        RuleKind = iota // one word
	QuotedOrWord                  // one word or quoted string
	WrappedScalar                 // one word, optionally wrapped in ( )
	FixedList                     // ( exactly N words )
	DefaultedList                 // ( up to N words ), short lists padded with Default, long ones truncated
	OpenList                      // ( one or more words or quoted strings )
	Point                         // ( a b )
	OptionalPoint                 // ( a b ), or nothing if the next token isn't (
	NamedPoint                    // NAME ( a b )
	PixelSizeUnit                 // magnitude [unit] on one line
)

var ruleKindNames = []string{"Scalar", "QuotedOrWord", "WrappedScalar", "FixedList", "DefaultedList", "OpenList", "Point", "OptionalPoint", "NamedPoint", "PixelSizeUnit"}

func (k RuleKind) String() string {
	if k < 0 || int(k) >= len(ruleKindNames) {
		return "Unknown"
	}
	return ruleKindNames[k]
}

const (
	openParen  = "("
	closeParen = ")"
)

type Rule struct {
	Kind    RuleKind
	N       int    // FixedList/DefaultedList arity
	Default string // DefaultedList padding
	Name    string // NamedPoint key
	Err     paramErrors.Kind
}

// Value is what a rule read. Words holds the value tokens in order (2 for points, N for lists).
type Value struct {
	Words []string

	// OptionalPoint wasn't there
	Absent bool

	// PixelSizeUnit line ended after the magnitude
	UnitAbsent bool
}

func ScalarRule(err paramErrors.Kind) Rule        { return Rule{Kind: Scalar, Err: err} }
func QuotedOrWordRule(err paramErrors.Kind) Rule  { return Rule{Kind: QuotedOrWord, Err: err} }
func WrappedScalarRule(err paramErrors.Kind) Rule { return Rule{Kind: WrappedScalar, Err: err} }
func OpenListRule(err paramErrors.Kind) Rule      { return Rule{Kind: OpenList, Err: err} }
func PointRule(err paramErrors.Kind) Rule         { return Rule{Kind: Point, Err: err} }
func OptionalPointRule(err paramErrors.Kind) Rule { return Rule{Kind: OptionalPoint, Err: err} }
func PixelSizeRule(err paramErrors.Kind) Rule     { return Rule{Kind: PixelSizeUnit, Err: err} }

func FixedListRule(n int, err paramErrors.Kind) Rule {
	return Rule{Kind: FixedList, N: n, Err: err}
}

func DefaultedListRule(n int, def string, err paramErrors.Kind) Rule {
	return Rule{Kind: DefaultedList, N: n, Default: def, Err: err}
}

func NamedPointRule(name string, err paramErrors.Kind) Rule {
	return Rule{Kind: NamedPoint, Name: name, Err: err}
}

// WithCount returns a copy of the rule with its list arity replaced, for lists sized by band count
func (r Rule) WithCount(n int) Rule {
	r.N = n
	return r
}

// Consume reads the rule's value from s. Lexical failures come back as the scanner's error,
// grammar failures as the rule's error kind.
func (r Rule) Consume(s *prmScanner.Scanner) (Value, error) {
	switch r.Kind {
	case Scalar:
		w, err := r.word(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Words: []string{w}}, nil
	case QuotedOrWord:
		w, err := r.value(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Words: []string{w}}, nil
	case WrappedScalar:
		return r.consumeWrappedScalar(s)
	case FixedList:
		return r.consumeFixedList(s)
	case DefaultedList:
		return r.consumeDefaultedList(s)
	case OpenList:
		return r.consumeOpenList(s)
	case Point:
		return r.consumePoint(s)
	case OptionalPoint:
		tok, err := s.Next()
		if err != nil {
			return Value{}, err
		}
		s.PushBack()
		if !tok.Is(openParen) {
			return Value{Absent: true}, nil
		}
		return r.consumePoint(s)
	case NamedPoint:
		tok, err := s.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind != prmScanner.Word || !strings.EqualFold(tok.Text, r.Name) {
			return Value{}, r.unexpected(tok, "expected "+r.Name)
		}
		return r.consumePoint(s)
	case PixelSizeUnit:
		return r.consumePixelSize(s)
	}

	return Value{}, paramErrors.Newf(r.Err, "unknown grammar rule %v", r.Kind)
}

func (r Rule) unexpected(tok prmScanner.Token, what string) error {
	return paramErrors.Newf(r.Err, "line %v: %v, got %v", tok.Line, what, tok)
}

// A plain word that isn't a parenthesis
func (r Rule) word(s *prmScanner.Scanner) (string, error) {
	tok, err := s.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != prmScanner.Word || tok.Is(openParen) || tok.Is(closeParen) {
		return "", r.unexpected(tok, "expected a value")
	}
	return tok.Text, nil
}

// A word or quoted string
func (r Rule) value(s *prmScanner.Scanner) (string, error) {
	tok, err := s.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind == prmScanner.Quoted {
		return tok.Text, nil
	}
	if tok.Kind != prmScanner.Word || tok.Is(openParen) || tok.Is(closeParen) {
		return "", r.unexpected(tok, "expected a value")
	}
	return tok.Text, nil
}

func (r Rule) expect(s *prmScanner.Scanner, word string) error {
	tok, err := s.Next()
	if err != nil {
		return err
	}
	if !tok.Is(word) {
		return r.unexpected(tok, "expected "+word)
	}
	return nil
}

func (r Rule) consumeWrappedScalar(s *prmScanner.Scanner) (Value, error) {
	tok, err := s.Next()
	if err != nil {
		return Value{}, err
	}
	if !tok.Is(openParen) {
		s.PushBack()
		w, err := r.word(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Words: []string{w}}, nil
	}

	w, err := r.word(s)
	if err != nil {
		return Value{}, err
	}
	if err := r.expect(s, closeParen); err != nil {
		return Value{}, err
	}
	return Value{Words: []string{w}}, nil
}

func (r Rule) consumeFixedList(s *prmScanner.Scanner) (Value, error) {
	if err := r.expect(s, openParen); err != nil {
		return Value{}, err
	}

	words := make([]string, 0, r.N)
	for len(words) < r.N {
		tok, err := s.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind != prmScanner.Word || tok.Is(openParen) || tok.Is(closeParen) {
			return Value{}, r.unexpected(tok, "expected "+strconv.Itoa(r.N)+" values, read "+strconv.Itoa(len(words)))
		}
		words = append(words, tok.Text)
	}

	if err := r.expect(s, closeParen); err != nil {
		return Value{}, err
	}
	return Value{Words: words}, nil
}

func (r Rule) consumeDefaultedList(s *prmScanner.Scanner) (Value, error) {
	if err := r.expect(s, openParen); err != nil {
		return Value{}, err
	}

	words := make([]string, 0, r.N)
	for {
		tok, err := s.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Is(closeParen) {
			break
		}
		if tok.Kind != prmScanner.Word || tok.Is(openParen) {
			return Value{}, r.unexpected(tok, "expected a value or )")
		}
		// Anything past N is ignored
		if len(words) < r.N {
			words = append(words, tok.Text)
		}
	}

	for len(words) < r.N {
		words = append(words, r.Default)
	}
	return Value{Words: words}, nil
}

func (r Rule) consumeOpenList(s *prmScanner.Scanner) (Value, error) {
	if err := r.expect(s, openParen); err != nil {
		return Value{}, err
	}

	words := []string{}
	for {
		tok, err := s.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Is(closeParen) {
			break
		}
		if !tok.IsValue() || tok.Is(openParen) {
			return Value{}, r.unexpected(tok, "expected a value or )")
		}
		words = append(words, tok.Text)
	}

	if len(words) <= 0 {
		return Value{}, paramErrors.New(r.Err, "empty list")
	}
	return Value{Words: words}, nil
}

func (r Rule) consumePoint(s *prmScanner.Scanner) (Value, error) {
	pt := r
	pt.N = 2
	return pt.consumeFixedList(s)
}

func (r Rule) consumePixelSize(s *prmScanner.Scanner) (Value, error) {
	s.SetEOLSignificant(true)
	defer s.SetEOLSignificant(false)

	magnitude, err := r.word(s)
	if err != nil {
		return Value{}, err
	}

	tok, err := s.Next()
	if err != nil {
		return Value{}, err
	}
	if tok.Kind == prmScanner.EOL || tok.Kind == prmScanner.EOF {
		return Value{Words: []string{magnitude}, UnitAbsent: true}, nil
	}
	if tok.Kind != prmScanner.Word || tok.Is(openParen) || tok.Is(closeParen) {
		return Value{}, r.unexpected(tok, "expected pixel size units")
	}
	return Value{Words: []string{magnitude, tok.Text}}, nil
}
