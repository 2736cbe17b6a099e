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

package paramFile

import (
	"bytes"
	"context"
	"io"

	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/mosaic"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
)

// Reader parses parameter files. Collaborators are optional: without Headers input headers aren't
// read, without Mosaic a mosaic job's inputs are only recorded.
type Reader struct {
	FS   fileaccess.FileAccess
	Root string // bucket or root dir for FS

	Headers HeaderLoader
	Mosaic  mosaic.Assembler

	Log logger.ILogger
}

// ReadParamFile reads, parses and resolves the parameter file at path
func (r *Reader) ReadParamFile(ctx context.Context, path string) (*paramModel.Params, error) {
	if r.FS == nil {
		return nil, paramErrors.New(paramErrors.ParamFileOpen, "no file access configured for "+path)
	}

	data, err := r.FS.ReadObject(r.Root, path)
	if err != nil {
		if r.FS.IsNotFoundError(err) {
			return nil, paramErrors.Wrap(paramErrors.ParamFileOpen, path, err)
		}
		return nil, paramErrors.Wrap(paramErrors.ParamFileRead, path, err)
	}

	logger.OrNull(r.Log).Infof("Read parameter file %v (%v bytes)", path, len(data))
	return r.ReadParams(ctx, bytes.NewReader(data), path)
}

// ReadParams parses and resolves a parameter document. name is used in errors and recorded as the
// model's InputParamFile.
func (r *Reader) ReadParams(ctx context.Context, in io.Reader, name string) (*paramModel.Params, error) {
	p, err := r.ParseParams(ctx, in, name)
	if err != nil {
		return nil, err
	}
	if err := Resolve(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseParams parses a parameter document without resolving it
func (r *Reader) ParseParams(ctx context.Context, in io.Reader, name string) (*paramModel.Params, error) {
	p := paramModel.New()
	p.InputParamFile = name

	d := newDocument(ctx, in, name, p, paramErrors.ParamFileRead, r.Log)
	d.reader = r

	if err := d.run(paramKeys); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseHeader reads an input header document into p
func ParseHeader(ctx context.Context, in io.Reader, name string, p *paramModel.Params, log logger.ILogger) error {
	d := newDocument(ctx, in, name, p, paramErrors.HeaderFileRead, log)

	if err := d.run(headerKeys); err != nil {
		return err
	}
	if err := d.checkHeader(); err != nil {
		return err
	}

	p.HeaderLoaded = true
	return nil
}

// KnownParamKeys lists the keys a parameter file may use
func KnownParamKeys() []string {
	return keyNames(paramKeys)
}

// KnownHeaderKeys lists the keys a header file may use
func KnownHeaderKeys() []string {
	return keyNames(headerKeys)
}
