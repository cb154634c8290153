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
	"unicode"

	"github.com/exascience/elmotif/internal"
	"github.com/exascience/elmotif/utils"
)

// A Group is one line of a name list: the motifs to write together.
type Group struct {
	// Number is the 1-based position of the group among the
	// non-blank lines of the name list.
	Number int
	// Line is the line number in the name list file.
	Line  int
	Names []string
}

// Label returns the conventional name of the group, Group<Number>.
func (g Group) Label() string {
	return fmt.Sprintf("Group%d", g.Number)
}

var closing = map[byte]byte{'[': ']', '(': ')'}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

type nameListScanner struct {
	s   string
	pos int
}

func (sc *nameListScanner) skipSpace() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

func (sc *nameListScanner) atEnd() bool {
	return sc.pos >= len(sc.s)
}

func (sc *nameListScanner) name() (string, error) {
	switch quote := sc.s[sc.pos]; quote {
	case '\'', '"':
		end := strings.IndexByte(sc.s[sc.pos+1:], quote)
		if end < 0 {
			return "", fmt.Errorf("unterminated quote at column %v", sc.pos+1)
		}
		name := sc.s[sc.pos+1 : sc.pos+1+end]
		if name == "" {
			return "", fmt.Errorf("empty name at column %v", sc.pos+1)
		}
		sc.pos += end + 2
		return name, nil
	default:
		start := sc.pos
		for sc.pos < len(sc.s) && sc.s[sc.pos] != ',' {
			switch sc.s[sc.pos] {
			case '\'', '"', '[', ']', '(', ')':
				return "", fmt.Errorf("unexpected %q at column %v", sc.s[sc.pos], sc.pos+1)
			}
			sc.pos++
		}
		name := strings.TrimSpace(sc.s[start:sc.pos])
		if name == "" {
			return "", fmt.Errorf("empty name at column %v", start+1)
		}
		if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			return "", fmt.Errorf("name %q contains white space", name)
		}
		return name, nil
	}
}

// ParseNameListLine parses a single name list line of the form
//
//	[ name (, name)* ]
//
// Parentheses may be used instead of brackets, names may be quoted
// with single or double quotes, and a trailing comma is allowed.
func ParseNameListLine(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if len(line) < 2 {
		return nil, fmt.Errorf("expected a bracketed list of names, got %q", line)
	}
	closer, ok := closing[line[0]]
	if !ok {
		return nil, fmt.Errorf("expected [ or ( at the start of the list, got %q", line[0])
	}
	if line[len(line)-1] != closer {
		return nil, fmt.Errorf("expected %q at the end of the list, got %q", closer, line[len(line)-1])
	}
	sc := nameListScanner{s: line[1 : len(line)-1]}
	var names []string
	for {
		sc.skipSpace()
		if sc.atEnd() {
			return names, nil
		}
		name, err := sc.name()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		sc.skipSpace()
		if sc.atEnd() {
			return names, nil
		}
		if sc.s[sc.pos] != ',' {
			return nil, fmt.Errorf("expected , after %v, got %q", name, sc.s[sc.pos])
		}
		sc.pos++
	}
}

// ParseNameList reads a name list, one group per line. Blank lines
// are skipped and do not count as groups.
func ParseNameList(r io.Reader) ([]Group, error) {
	var groups []Group
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<24)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		names, err := ParseNameListLine(line)
		if err != nil {
			return nil, &utils.FormatError{Line: lineNo, Msg: err.Error()}
		}
		groups = append(groups, Group{Number: len(groups) + 1, Line: lineNo, Names: names})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// ParseNameListFile reads the named name list file.
func ParseNameListFile(filename string) (groups []Group, err error) {
	err = internal.ReadFile(filename, func(r io.Reader) error {
		groups, err = ParseNameList(r)
		return err
	})
	if err != nil {
		return nil, utils.WithFile(err, filename)
	}
	return groups, nil
}

// SelectGroup returns the motifs of the group in listed order, and
// the names that are not in ms.
func (ms *Motifs) SelectGroup(g Group) (selected []*Motif, missing []utils.MissingName) {
	for _, name := range g.Names {
		if m, found := ms.Get(name); found {
			selected = append(selected, m)
		} else {
			missing = append(missing, utils.MissingName{Group: g.Number, Name: name})
		}
	}
	return selected, missing
}

// SelectGroups applies SelectGroup to each group. The result has one
// entry per group. If any names are missing, the error is a
// *utils.LookupError listing all of them, and the selection is
// still complete for all names that were found.
func (ms *Motifs) SelectGroups(groups []Group) ([][]*Motif, error) {
	result := make([][]*Motif, len(groups))
	var missing []utils.MissingName
	for i, g := range groups {
		selected, notFound := ms.SelectGroup(g)
		result[i] = selected
		missing = append(missing, notFound...)
	}
	if len(missing) > 0 {
		return result, &utils.LookupError{Missing: missing}
	}
	return result, nil
}
