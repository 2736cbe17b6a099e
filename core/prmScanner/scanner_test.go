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

package prmScanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func printTokens(s *Scanner) {
	for {
		tok, err := s.Next()
		if err != nil {
			fmt.Printf("err: %v\n", err)
			return
		}
		fmt.Printf("%v:%v ", tok.Kind, tok)
		if tok.Kind == EOF {
			fmt.Println()
			return
		}
	}
}

func Example_scanDocument() {
	doc := `# A comment line
INPUT_FILENAME = "/data/my input.hdf"
SPECTRAL_SUBSET = ( 1 0 1 )   # trailing comment
SPATIAL_SUBSET_UL_CORNER = (49.5,-125.25)
`
	printTokens(New(strings.NewReader(doc), DefaultConfig()))

	// Output:
	// word:INPUT_FILENAME quoted:"/data/my input.hdf" word:SPECTRAL_SUBSET word:( word:1 word:0 word:1 word:) word:SPATIAL_SUBSET_UL_CORNER word:( word:49.5 word:-125.25 word:) eof:eof
}

func Example_eolSignificant() {
	s := New(strings.NewReader("OUTPUT_PIXEL_SIZE = 500\r\nDATUM = WGS84 # x\nUTM_ZONE = 11"), DefaultConfig())
	s.SetEOLSignificant(true)
	printTokens(s)

	// Output:
	// word:OUTPUT_PIXEL_SIZE word:500 eol:eol word:DATUM word:WGS84 eol:eol word:UTM_ZONE word:11 eof:eof
}

func Example_pushBack() {
	s := New(strings.NewReader("UL_CORNER_LATLON NBANDS"), DefaultConfig())
	tok, _ := s.Next()
	fmt.Println(tok)
	tok, _ = s.Next()
	fmt.Println(tok)
	s.PushBack()
	tok, _ = s.Next()
	fmt.Println(tok)
	tok, _ = s.Next()
	fmt.Println(tok.Kind)
	tok, _ = s.Next()
	fmt.Println(tok.Kind)

	// Output:
	// UL_CORNER_LATLON
	// NBANDS
	// NBANDS
	// eof
	// eof
}

func Example_lineNumbers() {
	s := New(strings.NewReader("A\n\nB\r\nC"), DefaultConfig())
	for {
		tok, _ := s.Next()
		if tok.Kind == EOF {
			break
		}
		fmt.Printf("%v@%v ", tok.Text, tok.Line)
	}
	fmt.Println()

	// Output:
	// A@1 B@3 C@4
}

func Test_UnterminatedQuote(t *testing.T) {
	s := New(strings.NewReader("OUTPUT_FILENAME = \"abc\nNBANDS = 2"), DefaultConfig())
	tok, err := s.Next()
	if err != nil || tok.Text != "OUTPUT_FILENAME" {
		t.Fatalf("unexpected first token: %v, %v", tok, err)
	}

	_, err = s.Next()
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected ScanError, got %T", err)
	}
	if scanErr.Line != 1 || !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("unexpected scan error: %v", err)
	}
}

type failingReader struct{}

func (r failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func Test_ReadFailure(t *testing.T) {
	s := New(failingReader{}, DefaultConfig())
	_, err := s.Next()

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected ScanError, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("cause lost: %v", err)
	}
}

func Test_CustomConfig(t *testing.T) {
	cfg := Config{
		Whitespace: " ;",
		Comment:    '!',
		Delimiters: "[]",
		IsWordChar: func(r rune) bool { return r >= 'a' && r <= 'z' },
	}

	s := New(strings.NewReader("abc;[de] ! ignored\nf"), cfg)
	got := []string{}
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind == EOF {
			break
		}
		got = append(got, tok.Text)
	}

	if strings.Join(got, "|") != "abc|[|de|]|f" {
		t.Errorf("unexpected tokens: %v", got)
	}
}
