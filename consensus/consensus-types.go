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

// Package consensus reads consensus motif files and converts their
// records to the Homer motif format.
//
// A consensus file consists of blocks. A block starts with a "DE"
// line that holds the motif name and its detection threshold, and
// ends with an "XX" line. The lines in between are the rows of the
// position weight matrix, one row per motif position, with (at
// least) four tab-separated scores for A, C, G and T.
package consensus

import (
	"strings"
)

// A Record is a motif read from a consensus file.
type Record struct {
	Name      string
	Threshold string
	// Rows holds the first four fields of each matrix row, verbatim.
	Rows [][4]string
}

// HomerHeader returns the Homer header line of the record, without
// the trailing newline.
func (r *Record) HomerHeader() string {
	return ">DE\t" + r.Name + "\t" + r.Threshold
}

// Homer returns the record in Homer format. Every matrix row ends
// with a tab before its newline.
func (r *Record) Homer() string {
	var b strings.Builder
	b.WriteString(r.HomerHeader())
	b.WriteByte('\n')
	for _, row := range r.Rows {
		for _, field := range row {
			b.WriteString(field)
			b.WriteByte('\t')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Consensus is the contents of a consensus file: its records in the
// order they were first seen, indexed by name.
type Consensus struct {
	Records []*Record
	index   map[string]int
}

// NewConsensus allocates and initializes an empty Consensus.
func NewConsensus() *Consensus {
	return &Consensus{index: make(map[string]int)}
}

// Add appends the record unless a record with the same name already
// exists. It returns false and leaves c unmodified in that case.
func (c *Consensus) Add(record *Record) bool {
	if _, found := c.index[record.Name]; found {
		return false
	}
	c.index[record.Name] = len(c.Records)
	c.Records = append(c.Records, record)
	return true
}

// Get returns the record with the given name.
func (c *Consensus) Get(name string) (*Record, bool) {
	if i, found := c.index[name]; found {
		return c.Records[i], true
	}
	return nil, false
}

// Len returns the number of records.
func (c *Consensus) Len() int {
	return len(c.Records)
}

// Names returns the record names in file order.
func (c *Consensus) Names() []string {
	names := make([]string, len(c.Records))
	for i, record := range c.Records {
		names[i] = record.Name
	}
	return names
}

// HomerMap maps each motif name onto its Homer record.
func (c *Consensus) HomerMap() map[string]string {
	result := make(map[string]string, len(c.Records))
	for _, record := range c.Records {
		result[record.Name] = record.Homer()
	}
	return result
}
