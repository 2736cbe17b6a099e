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
	"os"
	"path/filepath"

	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/headerConverter"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/mosaic"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
)

// HeaderLoader reads the header describing an input file into p
type HeaderLoader interface {
	LoadHeader(ctx context.Context, inputPath string, p *paramModel.Params) error
}

// FileHeaderLoader finds the header for an input file by its extension:
//   - .hdr is the header itself
//   - .hdf is converted to a header by Converter, which is deleted once read
//   - .mos is a mosaic descriptor, every listed input's header is loaded
//   - anything else has its header alongside it with a .hdr extension
type FileHeaderLoader struct {
	FS   fileaccess.FileAccess
	Root string

	// May be nil if no .hdf inputs are expected
	Converter headerConverter.Converter

	// Only accept input paths that stay below Root
	Confined bool

	Log logger.ILogger
}

func (l *FileHeaderLoader) LoadHeader(ctx context.Context, inputPath string, p *paramModel.Params) error {
	if l.Confined && !filepath.IsLocal(inputPath) {
		return paramErrors.New(paramErrors.InvalidInputFileName, inputPath+" is outside the input root")
	}

	switch utils.GetExtension(inputPath) {
	case ".hdr":
		return l.loadStored(ctx, inputPath, p)
	case ".hdf":
		return l.loadConverted(ctx, inputPath, p)
	case mosaic.DescriptorExtension:
		return l.loadMosaic(ctx, inputPath, p)
	case "":
		return paramErrors.New(paramErrors.UnknownInputFileType, inputPath)
	}

	return l.loadStored(ctx, utils.ReplaceExtension(inputPath, ".hdr"), p)
}

func (l *FileHeaderLoader) loadStored(ctx context.Context, hdrPath string, p *paramModel.Params) error {
	data, err := l.FS.ReadObject(l.Root, hdrPath)
	if err != nil {
		if l.FS.IsNotFoundError(err) {
			return paramErrors.Wrap(paramErrors.HeaderFileOpen, hdrPath, err)
		}
		return paramErrors.Wrap(paramErrors.HeaderFileRead, hdrPath, err)
	}

	return ParseHeader(ctx, bytes.NewReader(data), hdrPath, p, l.Log)
}

func (l *FileHeaderLoader) loadConverted(ctx context.Context, binaryPath string, p *paramModel.Params) error {
	jobLog := logger.OrNull(l.Log)

	if l.Converter == nil {
		return paramErrors.New(paramErrors.ExternalToolMissing, "no header converter configured for "+binaryPath)
	}

	localPath, cleanup, err := l.localCopy(binaryPath)
	if err != nil {
		return err
	}
	defer cleanup()

	hdrPath, err := l.Converter.Convert(ctx, localPath)
	if err != nil {
		return err
	}

	// The converted header is ours to remove. Failing to do so doesn't fail the job
	local := &fileaccess.FSAccess{}
	defer func() {
		if err := local.DeleteObject("", hdrPath); err != nil {
			jobLog.Errorf("Failed to delete converted header %v: %v", hdrPath, err)
		}
	}()

	data, err := local.ReadObject("", hdrPath)
	if err != nil {
		return paramErrors.Wrap(paramErrors.HeaderFileOpen, hdrPath, err)
	}

	return ParseHeader(ctx, bytes.NewReader(data), hdrPath, p, l.Log)
}

// localCopy gives the converter a path on local disk, downloading the input if it lives elsewhere
func (l *FileHeaderLoader) localCopy(inputPath string) (string, func(), error) {
	noop := func() {}

	if _, ok := l.FS.(*fileaccess.FSAccess); ok {
		if len(l.Root) <= 0 {
			return inputPath, noop, nil
		}
		return filepath.Join(l.Root, inputPath), noop, nil
	}

	data, err := l.FS.ReadObject(l.Root, inputPath)
	if err != nil {
		if l.FS.IsNotFoundError(err) {
			return "", noop, paramErrors.Wrap(paramErrors.HeaderFileOpen, inputPath, err)
		}
		return "", noop, paramErrors.Wrap(paramErrors.HeaderFileRead, inputPath, err)
	}

	tmp, err := os.CreateTemp("", "mrt-input-*"+filepath.Ext(inputPath))
	if err != nil {
		return "", noop, paramErrors.Wrap(paramErrors.HeaderFileWrite, inputPath, err)
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil {
			logger.OrNull(l.Log).Errorf("Failed to delete downloaded input %v: %v", tmp.Name(), err)
		}
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", noop, paramErrors.Wrap(paramErrors.HeaderFileWrite, tmp.Name(), err)
	}

	return tmp.Name(), cleanup, nil
}

// loadMosaic loads the first input's header into p, checks the others have the same bands, and
// widens p's header corners to cover all of them
func (l *FileHeaderLoader) loadMosaic(ctx context.Context, descPath string, p *paramModel.Params) error {
	files, err := mosaic.ReadDescriptor(l.FS, l.Root, descPath)
	if err != nil {
		return err
	}

	corners := make([]paramModel.CornerSet, 0, len(files))
	for c, f := range files {
		if utils.GetExtension(f) == mosaic.DescriptorExtension {
			return paramErrors.Newf(paramErrors.UnknownInputFileType, "%v lists another mosaic: %v", descPath, f)
		}

		target := p
		if c > 0 {
			target = paramModel.New()
		}

		if err := l.LoadHeader(ctx, f, target); err != nil {
			return err
		}

		if target.NBands != p.NBands {
			return paramErrors.Newf(paramErrors.MosaicBandMismatch, "%v has %v bands, %v has %v", files[0], p.NBands, f, target.NBands)
		}

		corners = append(corners, target.HeaderCorners)
	}

	env, err := mosaic.Envelope(corners)
	if err != nil {
		return err
	}
	p.HeaderCorners.CopyFrom(env)
	return nil
}
