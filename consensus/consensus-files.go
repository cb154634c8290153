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

package consensus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/exascience/elmotif/internal"
	"github.com/exascience/elmotif/utils"
)

const maxLineLength = 1 << 24

func formatError(line, block int, format string, v ...interface{}) error {
	return &utils.FormatError{Line: line, Block: block, Msg: fmt.Sprintf(format, v...)}
}

// parseDefinition parses a "DE" line: the marker, a tab, and then
// the space-separated motif name and threshold.
func parseDefinition(line string) (name, threshold string, ok bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return "", "", false
	}
	tokens := strings.Fields(fields[1])
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], tokens[len(tokens)-1], true
}

func parseRow(line string) (row [4]string, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return row, fmt.Errorf("matrix row has %v field(s), expected at least 4", len(fields))
	}
	for i := range row {
		field := strings.TrimSpace(fields[i])
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return row, fmt.Errorf("matrix row field %v is not numeric: %q", i+1, field)
		}
		row[i] = field
	}
	return row, nil
}

// Parse reads a consensus file. Lines outside of DE/XX blocks are
// ignored.
func Parse(r io.Reader) (*Consensus, error) {
	c := NewConsensus()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineLength)

	var (
		current    *Record
		blockStart int
		block      int
		lineNo     int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "DE"):
			block++
			if current != nil {
				return nil, formatError(lineNo, block, "DE line inside the block for %v opened at line %v", current.Name, blockStart)
			}
			name, threshold, ok := parseDefinition(line)
			if !ok {
				return nil, formatError(lineNo, block, "DE line without motif name and threshold: %q", line)
			}
			current = &Record{Name: name, Threshold: threshold}
			blockStart = lineNo
		case strings.HasPrefix(line, "XX"):
			if current == nil {
				continue
			}
			if !c.Add(current) {
				return nil, formatError(blockStart, block, "duplicate motif name %v", current.Name)
			}
			current = nil
		case current != nil:
			if strings.TrimSpace(line) == "" {
				continue
			}
			row, err := parseRow(line)
			if err != nil {
				return nil, formatError(lineNo, block, "%v", err)
			}
			current.Rows = append(current.Rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, formatError(blockStart, block, "unterminated block for %v: missing XX line", current.Name)
	}
	return c, nil
}

// ParseFile reads the named consensus file.
func ParseFile(filename string) (c *Consensus, err error) {
	err = internal.ReadFile(filename, func(r io.Reader) error {
		c, err = Parse(r)
		return err
	})
	if err != nil {
		return nil, utils.WithFile(err, filename)
	}
	return c, nil
}

// WriteHomer writes all records in Homer format, in file order.
func (c *Consensus) WriteHomer(w io.Writer) error {
	for _, record := range c.Records {
		if _, err := io.WriteString(w, record.Homer()); err != nil {
			return err
		}
	}
	return nil
}

// ToHomerFile stores all records in a Homer motif file.
func ToHomerFile(c *Consensus, filename string) error {
	return internal.WriteFile(filename, func(w *bufio.Writer) error {
		return c.WriteHomer(w)
	})
}
