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

// Tokeniser for the line oriented key/value files used to describe a resampling job (.prm parameter
// files and .hdr header files). Produces one token at a time, never the whole list.
package prmScanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type TokenKind int

const (
	Word TokenKind = iota
	Quoted
	EOL
	EOF
)

var tokenKindNames = map[TokenKind]string{
	Word:   "word",
	Quoted: "quoted",
	EOL:    "eol",
	EOF:    "eof",
}

func (k TokenKind) String() string {
	if n, ok := tokenKindNames[k]; ok {
		return n
	}
	return "unknown"
}

type Token struct {
	Kind TokenKind
	Text string
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case EOL, EOF:
		return t.Kind.String()
	case Quoted:
		return fmt.Sprintf("%q", t.Text)
	}
	return t.Text
}

// Is reports whether the token is the given word (case-sensitive), eg Is("(")
func (t Token) Is(word string) bool {
	return t.Kind == Word && t.Text == word
}

// IsValue reports whether the token can carry a value (a word or a quoted string)
func (t Token) IsValue() bool {
	return t.Kind == Word || t.Kind == Quoted
}

// Config describes the lexical rules
type Config struct {
	// Characters treated as pure separators, never emitted
	Whitespace string

	// Starts a comment running to end of line. 0 disables comments.
	Comment rune

	// Delimits a quoted string. 0 disables quoting.
	Quote rune

	// Characters always scanned as a one character word, even inside a run of word chars
	Delimiters string

	// Characters legal inside an unquoted word
	IsWordChar func(r rune) bool
}

const defaultExtraWordChars = "._-+/:\\~*"

// DefaultConfig returns the rules used by .prm and .hdr files: '=' and ',' are whitespace,
// '#' starts a comment, '"' quotes, and parentheses are stand-alone words
func DefaultConfig() Config {
	return Config{
		Whitespace: " \t\f\v=,",
		Comment:    '#',
		Quote:      '"',
		Delimiters: "()",
		IsWordChar: func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(defaultExtraWordChars, r)
		},
	}
}

// ScanError is returned for any lexical or read failure. The parser maps it to the read-failure
// kind of whichever file it was reading.
type ScanError struct {
	Line int
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("line %v: %v", e.Line, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

var ErrUnterminatedQuote = errors.New("unterminated quoted string")

type Scanner struct {
	cfg            Config
	in             *bufio.Reader
	line           int
	eolSignificant bool

	last       Token
	pushedBack bool
	done       bool
}

// New makes a scanner reading from r. The scanner can't be restarted; make a new one per document.
func New(r io.Reader, cfg Config) *Scanner {
	if cfg.IsWordChar == nil {
		cfg.IsWordChar = DefaultConfig().IsWordChar
	}
	return &Scanner{cfg: cfg, in: bufio.NewReader(r), line: 1}
}

// SetEOLSignificant switches whether end-of-line is returned as an EOL token or treated as whitespace
func (s *Scanner) SetEOLSignificant(on bool) {
	s.eolSignificant = on
}

// PushBack makes the next call to Next return the last token again. Only one token of pushback.
func (s *Scanner) PushBack() {
	s.pushedBack = true
}

// Line returns the current line number (1 based)
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next token. After EOF every call returns EOF again.
func (s *Scanner) Next() (Token, error) {
	if s.pushedBack {
		s.pushedBack = false
		// An EOL pushed back while EOL was significant is just whitespace if that changed since
		if s.last.Kind != EOL || s.eolSignificant {
			return s.last, nil
		}
	}

	tok, err := s.scan()
	if err != nil {
		return Token{}, err
	}
	s.last = tok
	return tok, nil
}

func (s *Scanner) scan() (Token, error) {
	if s.done {
		return Token{Kind: EOF, Line: s.line}, nil
	}

	for {
		r, err := s.read()
		if err == io.EOF {
			s.done = true
			return Token{Kind: EOF, Line: s.line}, nil
		}
		if err != nil {
			return Token{}, err
		}

		switch {
		case r == '\n' || r == '\r':
			if r == '\r' {
				// Swallow the \n of a \r\n pair
				if next, err := s.in.Peek(1); err == nil && next[0] == '\n' {
					s.in.ReadByte()
				}
			}
			line := s.line
			s.line++
			if s.eolSignificant {
				return Token{Kind: EOL, Line: line}, nil
			}
		case strings.ContainsRune(s.cfg.Whitespace, r):
			// Separator, skip
		case s.cfg.Comment != 0 && r == s.cfg.Comment:
			if err := s.skipComment(); err != nil {
				return Token{}, err
			}
		case s.cfg.Quote != 0 && r == s.cfg.Quote:
			return s.scanQuoted()
		case strings.ContainsRune(s.cfg.Delimiters, r):
			return Token{Kind: Word, Text: string(r), Line: s.line}, nil
		case s.cfg.IsWordChar(r):
			return s.scanWord(r)
		default:
			// Anything we don't classify stands on its own, the grammar will reject it
			return Token{Kind: Word, Text: string(r), Line: s.line}, nil
		}
	}
}

func (s *Scanner) read() (rune, error) {
	r, _, err := s.in.ReadRune()
	if err != nil && err != io.EOF {
		return 0, &ScanError{Line: s.line, Err: errors.Wrap(err, "read failed")}
	}
	return r, err
}

// Leaves the line ending in place so it can still be reported as EOL
func (s *Scanner) skipComment() error {
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' || r == '\r' {
			s.in.UnreadRune()
			return nil
		}
	}
}

func (s *Scanner) scanQuoted() (Token, error) {
	var sb strings.Builder
	line := s.line
	for {
		r, err := s.read()
		if err == io.EOF || (err == nil && (r == '\n' || r == '\r')) {
			return Token{}, &ScanError{Line: line, Err: ErrUnterminatedQuote}
		}
		if err != nil {
			return Token{}, err
		}
		if r == s.cfg.Quote {
			return Token{Kind: Quoted, Text: sb.String(), Line: line}, nil
		}
		sb.WriteRune(r)
	}
}

func (s *Scanner) scanWord(first rune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if strings.ContainsRune(s.cfg.Delimiters, r) || !s.cfg.IsWordChar(r) {
			s.in.UnreadRune()
			break
		}
		sb.WriteRune(r)
	}
	return Token{Kind: Word, Text: sb.String(), Line: s.line}, nil
}
