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

package meme

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/exascience/elmotif/internal"
	"github.com/exascience/elmotif/utils"
)

// Header is written at the start of every MEME file.
const Header = "MEME version 4\nALPHABET= ACGT\n\n"

// Parse reads a MEME file. Text before the first MOTIF token is
// skipped. Motifs with duplicate names, and title lines without a
// name, are reported as *utils.FormatError.
func Parse(r io.Reader) (*Motifs, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	blocks := strings.Split(string(content), Delimiter)
	ms := NewMotifs()
	line := 1 + strings.Count(blocks[0], "\n")
	for i := 1; i < len(blocks); i++ {
		block := blocks[i]
		var titleRest, body string
		if nl := strings.IndexByte(block, '\n'); nl >= 0 {
			titleRest, body = block[:nl], block[nl+1:]
		} else {
			titleRest = block
		}
		title := Delimiter + titleRest
		fields := strings.Fields(title)
		if len(fields) < 2 {
			return nil, &utils.FormatError{Line: line, Block: i, Msg: fmt.Sprintf("title line without motif name: %q", strings.TrimSpace(title))}
		}
		m := NewMotif(fields[1], title, body)
		m.Block, m.Line = i, line
		if !ms.Add(m) {
			first, _ := ms.Get(m.Name)
			return nil, &utils.FormatError{Line: line, Block: i, Msg: fmt.Sprintf("duplicate motif name %v, first defined in block %v", m.Name, first.Block)}
		}
		line += strings.Count(block, "\n")
	}
	return ms, nil
}

// ParseFile reads the named MEME file.
func ParseFile(filename string) (ms *Motifs, err error) {
	err = internal.ReadFile(filename, func(r io.Reader) error {
		ms, err = Parse(r)
		return err
	})
	if err != nil {
		return nil, utils.WithFile(err, filename)
	}
	return ms, nil
}

// WriteMotifs writes the MEME header followed by the given motifs.
func WriteMotifs(w io.Writer, motifs []*Motif) error {
	if _, err := io.WriteString(w, Header); err != nil {
		return err
	}
	for _, m := range motifs {
		if _, err := io.WriteString(w, m.Text()); err != nil {
			return err
		}
	}
	return nil
}

// ToMemeFile stores the given motifs in a MEME file.
func ToMemeFile(filename string, motifs []*Motif) error {
	return internal.WriteFile(filename, func(w *bufio.Writer) error {
		return WriteMotifs(w, motifs)
	})
}
