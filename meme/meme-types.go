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

/*
Package meme reads and writes multi-motif files in MEME format, and
selects subsets of their motifs.

A MEME file is split into motifs at each occurrence of the MOTIF
token. The first line of a motif is its title line, the second
whitespace-separated token of which is the motif name. The second
line of a motif carries its E-value as an E=<value> token, for
example

	MOTIF 1 GGCGCCAT
	letter-probability matrix: alength= 4 w= 8 nsites= 20 E= 1.2e-005

Motif texts are never modified: selecting motifs only decides which
ones are written again, and in which order.
*/
package meme

// Delimiter separates motifs in a MEME file.
const Delimiter = "MOTIF"

// A Motif is a single motif of a MEME file.
type Motif struct {
	// Name is the second token of the title line.
	Name string
	// Title is the title line, including the MOTIF token.
	Title string
	// Body is everything after the title line, unchanged.
	Body string
	// Block is the 1-based position of the motif in its file, and
	// Line the line number of its title line.
	Block, Line int

	evalue    float64
	evalueErr error
}

// NewMotif allocates and initializes a Motif, and extracts its
// E-value.
func NewMotif(name, title, body string) *Motif {
	m := &Motif{Name: name, Title: title, Body: body}
	m.evalue, m.evalueErr = ParseEValue(m.secondLine())
	return m
}

// Text returns the full text of the motif as it is written to a MEME
// file: the title line, a newline, and the body.
func (m *Motif) Text() string {
	return m.Title + "\n" + m.Body
}

func (m *Motif) secondLine() string {
	body := m.Body
	for i := 0; i < len(body); i++ {
		if body[i] == '\n' {
			return body[:i]
		}
	}
	return body
}

// Motifs is a collection of motifs with unique names that keeps the
// order in which motifs were added.
type Motifs struct {
	list  []*Motif
	index map[string]int
}

// NewMotifs allocates and initializes an empty collection.
func NewMotifs() *Motifs {
	return &Motifs{index: make(map[string]int)}
}

// Add appends m unless a motif with the same name already exists. It
// returns false and leaves ms unmodified in that case.
func (ms *Motifs) Add(m *Motif) bool {
	if _, found := ms.index[m.Name]; found {
		return false
	}
	ms.index[m.Name] = len(ms.list)
	ms.list = append(ms.list, m)
	return true
}

// Get returns the motif with the given name.
func (ms *Motifs) Get(name string) (*Motif, bool) {
	if i, found := ms.index[name]; found {
		return ms.list[i], true
	}
	return nil, false
}

// Len returns the number of motifs.
func (ms *Motifs) Len() int {
	return len(ms.list)
}

// Motifs returns the motifs in insertion order.
func (ms *Motifs) Motifs() []*Motif {
	return append([]*Motif(nil), ms.list...)
}

// Names returns the motif names in insertion order.
func (ms *Motifs) Names() []string {
	names := make([]string, len(ms.list))
	for i, m := range ms.list {
		names[i] = m.Name
	}
	return names
}

// Filter returns a new collection with the motifs for which keep
// returns true, in the same order. ms itself is not modified.
func (ms *Motifs) Filter(keep func(m *Motif) (bool, error)) (*Motifs, error) {
	result := NewMotifs()
	for _, m := range ms.list {
		ok, err := keep(m)
		if err != nil {
			return nil, err
		}
		if ok {
			result.Add(m)
		}
	}
	return result, nil
}
