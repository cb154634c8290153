// elMotif: tools for selecting DNA sequence motifs and motif clusters.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elmotif/blob/master/LICENSE.txt>.

package internal

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	gzip "github.com/klauspost/pgzip"
)

type inputFile struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

func (f *inputFile) Close() (err error) {
	if f.gz != nil {
		err = f.gz.Close()
	}
	if nerr := f.file.Close(); err == nil {
		err = nerr
	}
	return err
}

// IsGzip checks whether the buffered input starts with the gzip
// magic bytes, without consuming them.
func IsGzip(buf *bufio.Reader) (bool, error) {
	magic, err := buf.Peek(2)
	if err == io.EOF || (err == nil && len(magic) < 2) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// Open opens the named file for reading. Gzip-compressed files are
// decompressed transparently.
func Open(filename string) (io.ReadCloser, error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewReader(file)
	ok, err := IsGzip(buf)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if !ok {
		return &inputFile{Reader: buf, file: file}, nil
	}
	gz, err := gzip.NewReader(buf)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &inputFile{Reader: gz, file: file, gz: gz}, nil
}

// An OutputFile is written to a uniquely named temporary file next to
// its target, and only moved into place by Commit. Closing an
// uncommitted OutputFile discards what was written.
type OutputFile struct {
	*os.File
	target string
	done   bool
}

// Create creates an OutputFile for the given target filename,
// creating missing parent directories.
func Create(filename string) (*OutputFile, error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(pathname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(pathname)+"."+uuid.NewString()+".tmp")
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return nil, err
	}
	return &OutputFile{File: file, target: pathname}, nil
}

// Target returns the absolute filename the OutputFile is committed to.
func (f *OutputFile) Target() string {
	return f.target
}

// Commit closes the temporary file and renames it to the target.
func (f *OutputFile) Commit() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	if err := f.File.Close(); err != nil {
		_ = os.Remove(f.File.Name())
		return err
	}
	if err := os.Rename(f.File.Name(), f.target); err != nil {
		_ = os.Remove(f.File.Name())
		return err
	}
	return nil
}

// Close discards the OutputFile if it has not been committed yet.
func (f *OutputFile) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	err := f.File.Close()
	if nerr := os.Remove(f.File.Name()); err == nil {
		err = nerr
	}
	return err
}

// WriteFile creates filename and fills it through a buffered writer
// passed to write. The file only appears if write and all flushing
// succeed.
func WriteFile(filename string, write func(w *bufio.Writer) error) (err error) {
	output, err := Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	w := bufio.NewWriter(output)
	if err = write(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return output.Commit()
}

// ReadFile opens filename and passes it to read, closing it on every path.
func ReadFile(filename string, read func(r io.Reader) error) (err error) {
	input, err := Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := input.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	return read(input)
}
