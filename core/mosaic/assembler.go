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

// Builds the descriptor file for a mosaic job: the list of input files to stitch together, written
// to storage so the input header loader (and later the resampler) can pick it up like any other
// input file. Also computes the combined geographic extent of the inputs.
package mosaic

import (
	"context"
	"path"
	"strings"

	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
)

// DescriptorExtension - the loader recognises mosaic descriptors by this
const DescriptorExtension = ".mos"

// Assembler turns a list of input files into a descriptor file, returning the descriptor path
type Assembler interface {
	Assemble(ctx context.Context, paths []string) (string, error)
}

// FileList is an owned list of mosaic inputs which refuses to grow past MaxMosaicFiles
type FileList struct {
	files []string
}

func (l *FileList) Add(file string) error {
	if len(l.files) >= paramModel.MaxMosaicFiles {
		return paramErrors.Newf(paramErrors.TooManyMosaicFiles, "limit is %v", paramModel.MaxMosaicFiles)
	}
	if !fileaccess.IsValidObjectName(file) {
		return paramErrors.New(paramErrors.InvalidInputFileName, file)
	}
	l.files = append(l.files, file)
	return nil
}

func (l *FileList) Len() int {
	return len(l.files)
}

// Files returns a copy of the list
func (l *FileList) Files() []string {
	return append([]string{}, l.files...)
}

// MakeFileList - builds a capacity-checked list from paths
func MakeFileList(paths []string) (*FileList, error) {
	if len(paths) <= 0 {
		return nil, paramErrors.New(paramErrors.MissingInputFileName, "mosaic has no input files")
	}

	l := &FileList{files: make([]string, 0, len(paths))}
	for _, p := range paths {
		if err := l.Add(p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// FileAssembler writes descriptors through a FileAccess, one input path per line
type FileAssembler struct {
	FS   fileaccess.FileAccess
	Root string // bucket or root dir

	// Directory (relative to Root) descriptors are written to
	Dir string

	Log logger.ILogger
}

func (a *FileAssembler) Assemble(ctx context.Context, paths []string) (string, error) {
	list, err := MakeFileList(paths)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", paramErrors.Wrap(paramErrors.MosaicAssemblyFailed, "", err)
	}

	descPath := path.Join(a.Dir, "mosaic-"+utils.RandStringBytesMaskImpr(8)+DescriptorExtension)
	err = a.FS.WriteObject(a.Root, descPath, FormatDescriptor(list.Files()))
	if err != nil {
		return "", paramErrors.Wrap(paramErrors.MosaicFileWrite, descPath, err)
	}

	logger.OrNull(a.Log).Infof("Wrote mosaic descriptor %v listing %v files", descPath, list.Len())
	return descPath, nil
}

// FormatDescriptor - the descriptor file contents for the given inputs
func FormatDescriptor(files []string) []byte {
	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// ReadDescriptor lists the input files of a mosaic descriptor. Blank lines and # comments are ignored.
func ReadDescriptor(fs fileaccess.FileAccess, root string, descPath string) ([]string, error) {
	data, err := fs.ReadObject(root, descPath)
	if err != nil {
		if fs.IsNotFoundError(err) {
			return nil, paramErrors.Wrap(paramErrors.MosaicFileOpen, descPath, err)
		}
		return nil, paramErrors.Wrap(paramErrors.MosaicFileRead, descPath, err)
	}

	files := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 0 || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}

	list, err := MakeFileList(files)
	if err != nil {
		return nil, err
	}
	return list.Files(), nil
}
