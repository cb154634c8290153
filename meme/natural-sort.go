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
	"sort"
	"strings"
)

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// naturalKey splits s into alternating runs of non-digits and
// digits. The result always starts and ends with a (possibly empty)
// non-digit run, so digit runs are at odd indices.
func naturalKey(s string) []string {
	key := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		key = append(key, s[start:i])
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		key = append(key, s[i:j])
		start, i = j, j
	}
	return append(key, s[start:])
}

// compareNumeric compares two runs of decimal digits by value.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in the order humans
// expect: digit runs are compared by their numeric value, so that
// motif2 comes before motif10.
func NaturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if i%2 == 1 {
			c = compareNumeric(ka[i], kb[i])
		} else {
			c = strings.Compare(ka[i], kb[i])
		}
		if c != 0 {
			return c < 0
		}
	}
	return len(ka) < len(kb)
}

// SortNaturally sorts names in natural order. Names with equal keys,
// such as m1 and m01, keep their relative order.
func SortNaturally(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

// NaturallySorted returns the motifs ordered by the natural order of
// their names.
func (ms *Motifs) NaturallySorted() []*Motif {
	result := ms.Motifs()
	sort.SliceStable(result, func(i, j int) bool {
		return NaturalLess(result[i].Name, result[j].Name)
	})
	return result
}
