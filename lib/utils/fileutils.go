/*
Copyright 2018 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// NormalizePath normalises path, evaluating symlinks and converting local
// paths to absolute
func NormalizePath(path string) (string, error) {
	s, err := filepath.Abs(path)
	if err != nil {
		return "", trace.ConvertSystemError(err)
	}
	abs, err := filepath.EvalSymlinks(s)
	if err != nil {
		return "", trace.ConvertSystemError(err)
	}
	return abs, nil
}

// ReadPath reads file at given path
func ReadPath(path string) ([]byte, error) {
	abs, err := NormalizePath(path)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	bytes, err := ioutil.ReadFile(abs)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	return bytes, nil
}

// ReaderForPath returns a reader for file at given path
func ReaderForPath(path string) (io.ReadCloser, error) {
	abs, err := NormalizePath(path)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	return f, nil
}

// IsFile determines if path specifies a regular file
func IsFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, trace.ConvertSystemError(err)
	}
	return !fi.IsDir() && fi.Mode().IsRegular(), nil
}

// WriteFileAtomic writes data to dst atomically with permissions perm.
// Key material is never visible in dst with wider permissions or partially
// written.
func WriteFileAtomic(dst string, data []byte, perm os.FileMode) error {
	return CopyReaderWithOptions(dst, bytes.NewReader(data), PermOption(perm))
}

// CopyReaderWithOptions copies the contents from src to dst atomically.
// If dst does not exist, CopyReaderWithOptions creates it.
// Callers choose the options to apply on the resulting file with options
func CopyReaderWithOptions(dst string, src io.Reader, options ...FileOption) error {
	tmp, err := ioutil.TempFile(filepath.Dir(dst), "")
	if err != nil {
		return trace.ConvertSystemError(err)
	}

	cleanup := func() {
		err := os.Remove(tmp.Name())
		if err != nil {
			log.WithError(err).Warnf("Failed to remove %q.", tmp.Name())
		}
	}

	for _, option := range options {
		if err = option(tmp.Name()); err != nil {
			tmp.Close()
			cleanup()
			return trace.ConvertSystemError(err)
		}
	}
	_, err = io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		cleanup()
		return trace.ConvertSystemError(err)
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	err = os.Rename(tmp.Name(), dst)
	if err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	return nil
}

// FileOption defines a functional option to apply to specified path
type FileOption func(path string) error

// PermOption changes the file permissions on the specified file
// to perm
func PermOption(perm os.FileMode) FileOption {
	return func(path string) error {
		return os.Chmod(path, perm)
	}
}
