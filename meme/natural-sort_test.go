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
	"testing"
)

func TestSortNaturally(t *testing.T) {
	names := []string{"motif2", "motif10", "motif1"}
	SortNaturally(names)
	if !namesEqual(names, []string{"motif1", "motif2", "motif10"}) {
		t.Errorf("SortNaturally 1 failed: %v", names)
	}
	names = []string{"b", "a10b", "a2b3", "a2b", "10", "9", "a", ""}
	SortNaturally(names)
	if !namesEqual(names, []string{"", "9", "10", "a", "a2b", "a2b3", "a10b", "b"}) {
		t.Errorf("SortNaturally 2 failed: %v", names)
	}
	names = []string{"m01", "m1", "m001"}
	SortNaturally(names)
	if !namesEqual(names, []string{"m01", "m1", "m001"}) {
		t.Errorf("SortNaturally ties failed: %v", names)
	}
	names = []string{"m123456789012345678901234567890", "m99999999999999999999999999999"}
	SortNaturally(names)
	if names[0] != "m99999999999999999999999999999" {
		t.Error("SortNaturally long digit runs failed")
	}
}

func TestNaturalLess(t *testing.T) {
	if !NaturalLess("motif_01_2", "motif_01_10") {
		t.Error("NaturalLess 1 failed")
	}
	if NaturalLess("motif_02_1", "motif_01_10") {
		t.Error("NaturalLess 2 failed")
	}
	if NaturalLess("x", "x") {
		t.Error("NaturalLess 3 failed")
	}
	if !NaturalLess("x1", "x1a") {
		t.Error("NaturalLess 4 failed")
	}
}

func TestNaturallySorted(t *testing.T) {
	ms := mustParse(t, makeMeme("motif2", "1", "motif10", "1", "motif1", "1"))
	if !namesEqual(motifNames(ms.NaturallySorted()), []string{"motif1", "motif2", "motif10"}) {
		t.Error("NaturallySorted failed")
	}
	if !namesEqual(ms.Names(), []string{"motif2", "motif10", "motif1"}) {
		t.Error("NaturallySorted modified its input")
	}
}
