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

// Reads resampling parameter files (.prm) and the header files (.hdr) of their inputs into a
// paramModel.Params, then resolves the cross-field rules that make the model ready to write.
//
// Both file kinds share one forward-only pass: read a key, look it up in the key table for the
// file kind, let the key's grammar rule consume its value and store it. Keys we don't know are
// skipped along with their values.
package paramFile

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramGrammar"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/prmScanner"
	"github.com/lpdaac/mrtparams/core/utils"
)

// field describes one key: how its value is read and where it goes
type field struct {
	rule paramGrammar.Rule

	// List arity is the band count, which must already be known
	bands bool

	apply func(d *document, v paramGrammar.Value) error
}

// document is the state of one pass over one file
type document struct {
	ctx  context.Context
	name string
	p    *paramModel.Params
	s    *prmScanner.Scanner
	log  logger.ILogger

	// Error kind for failures reading the underlying stream
	readKind paramErrors.Kind

	// Collaborators for the parameter file pass. Nil while reading a header
	reader *Reader

	// Keys seen so far, upper case
	seen map[string]bool
}

func newDocument(ctx context.Context, in io.Reader, name string, p *paramModel.Params, readKind paramErrors.Kind, log logger.ILogger) *document {
	return &document{
		ctx:      ctx,
		name:     name,
		p:        p,
		s:        prmScanner.New(in, prmScanner.DefaultConfig()),
		log:      logger.OrNull(log),
		readKind: readKind,
		seen:     map[string]bool{},
	}
}

func (d *document) run(keys map[string]field) error {
	skipping := false

	for {
		tok, err := d.s.Next()
		if err != nil {
			return d.fail(err)
		}
		if tok.Kind == prmScanner.EOF {
			return nil
		}

		if tok.Kind == prmScanner.Word {
			key := strings.ToUpper(tok.Text)
			if f, ok := keys[key]; ok {
				skipping = false
				if err := d.applyField(key, f); err != nil {
					return err
				}
				continue
			}
		}

		if skipping {
			continue
		}

		if tok.Kind != prmScanner.Word {
			return paramErrors.Newf(paramErrors.GeneralError, "%v line %v: expected a key, got %q", d.name, tok.Line, tok.Text)
		}

		d.log.Debugf("%v line %v: skipping unknown key %v", d.name, tok.Line, tok.Text)
		skipping = true
	}
}

func (d *document) applyField(key string, f field) error {
	rule := f.rule
	if f.bands {
		n, err := d.p.RequireBands(key)
		if err != nil {
			return err
		}
		rule = rule.WithCount(n)
	}

	v, err := d.consume(rule)
	if err != nil {
		return err
	}

	d.seen[key] = true
	return f.apply(d, v)
}

// invalid reports a value that read fine but makes no sense for its key
func (d *document) invalid(kind paramErrors.Kind, value interface{}) error {
	return paramErrors.Newf(kind, "%v line %v: %v", d.name, d.s.Line(), value)
}

// consume reads one rule's value, mapping failures to errors carrying this file's name
func (d *document) consume(rule paramGrammar.Rule) (paramGrammar.Value, error) {
	v, err := rule.Consume(d.s)
	if err != nil {
		return v, d.fail(err)
	}
	return v, nil
}

// fail maps lexical failures to the read error kind for this file, and names the file on others
func (d *document) fail(err error) error {
	var scanErr *prmScanner.ScanError
	if errors.As(err, &scanErr) {
		return paramErrors.Wrap(d.readKind, d.name, err)
	}
	return d.locate(err)
}

func (d *document) locate(err error) error {
	var pe *paramErrors.Error
	if err != nil && len(d.name) > 0 && errors.As(err, &pe) && !strings.HasPrefix(pe.Context, d.name) {
		if len(pe.Context) > 0 {
			pe.Context = d.name + " " + pe.Context
		} else {
			pe.Context = d.name
		}
	}
	return err
}

func keyNames(keys map[string]field) []string {
	return utils.GetMapKeys(keys)
}
