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

package utils

import (
	"fmt"
	"strings"
)

// A UsageError reports a missing or invalid command line argument.
type UsageError struct {
	Command string
	Msg     string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Msg
	}
	return e.Command + ": " + e.Msg
}

// NewUsageError allocates a UsageError with a formatted message.
func NewUsageError(command, format string, v ...interface{}) *UsageError {
	return &UsageError{Command: command, Msg: fmt.Sprintf(format, v...)}
}

// A FormatError reports malformed input. Line and Block are 1-based;
// a zero value means the location is not known for that dimension.
type FormatError struct {
	File  string
	Line  int
	Block int
	Msg   string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
	} else {
		b.WriteString("input")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Block > 0 {
		fmt.Fprintf(&b, " (block %d)", e.Block)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// WithFile returns the error annotated with a filename if err is a
// *FormatError without one. Other errors are returned unchanged.
func WithFile(err error, filename string) error {
	if ferr, ok := err.(*FormatError); ok && ferr.File == "" {
		annotated := *ferr
		annotated.File = filename
		return &annotated
	}
	return err
}

// MissingName is a name that a name list refers to, but that is not
// among the parsed motifs. Group is the 1-based group number.
type MissingName struct {
	Group int
	Name  string
}

// A LookupError collects all names that could not be resolved.
type LookupError struct {
	Missing []MissingName
}

func (e *LookupError) Error() string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = fmt.Sprintf("%v (group %v)", m.Name, m.Group)
	}
	return fmt.Sprintf("%d unknown motif name(s): %v", len(e.Missing), strings.Join(names, ", "))
}
