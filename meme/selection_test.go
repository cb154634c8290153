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
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"testing"
)

func TestTopKByRank(t *testing.T) {
	ms := mustParse(t, makeMeme("a", "0.5", "b", "0.01", "c", "0", "d", "2", "e", "0.01"))
	top, err := ms.TopK(3, ByRank)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(top.Names(), []string{"b", "c", "e"}) {
		t.Errorf("TopK 1 failed: %v", top.Names())
	}
	top, err = ms.TopK(2, ByRank)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(top.Names(), []string{"b", "c"}) {
		t.Errorf("TopK ties failed: %v", top.Names())
	}
	top, err = ms.TopK(10, ByRank)
	if err != nil {
		t.Fatal(err)
	}
	if top.Len() != ms.Len() {
		t.Error("TopK with large k failed")
	}
	if _, err := ms.TopK(0, ByRank); err == nil {
		t.Error("TopK with k = 0 did not fail")
	}
}

func TestTopKByOrder(t *testing.T) {
	ms := mustParse(t, makeMeme("a", "0.5", "b", "0.01", "c", "0", "d", "2"))
	top, err := ms.TopK(2, ByOrder)
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(top.Names(), []string{"a", "b"}) {
		t.Errorf("TopK ByOrder failed: %v", top.Names())
	}
}

func TestTopKSeparatesRanks(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	entries := make([]string, 0, 400)
	for i := 0; i < 200; i++ {
		entries = append(entries, fmt.Sprintf("m%d", i), strconv.FormatFloat(r.Float64()*float64(i+1), 'g', -1, 64))
	}
	ms := mustParse(t, makeMeme(entries...))
	for _, k := range []int{1, 7, 50, 199} {
		top, err := ms.TopK(k, ByRank)
		if err != nil {
			t.Fatal(err)
		}
		if top.Len() > k {
			t.Errorf("TopK %v returned %v motifs", k, top.Len())
		}
		maxKept := 0.0
		for _, m := range top.Motifs() {
			e, _ := m.EValue()
			if e > maxKept {
				maxKept = e
			}
		}
		for _, m := range ms.Motifs() {
			if _, kept := top.Get(m.Name); kept {
				continue
			}
			if e, _ := m.EValue(); e < maxKept {
				t.Errorf("TopK %v excluded %v with E-value %v below %v", k, m.Name, e, maxKept)
			}
		}
	}
}

func TestSortedByEValueIsStable(t *testing.T) {
	entries := make([]string, 0, 600)
	for i := 0; i < 300; i++ {
		entries = append(entries, fmt.Sprintf("m%03d", i), strconv.Itoa(i%3))
	}
	ms := mustParse(t, makeMeme(entries...))
	sorted, err := ms.SortedByEValue()
	if err != nil {
		t.Fatal(err)
	}
	if !sort.SliceIsSorted(sorted, func(i, j int) bool {
		ei, _ := sorted[i].EValue()
		ej, _ := sorted[j].EValue()
		if ei != ej {
			return ei < ej
		}
		return sorted[i].Name < sorted[j].Name
	}) {
		t.Error("SortedByEValue failed")
	}
}

func TestSelect(t *testing.T) {
	ms := mustParse(t, makeMeme("a", "0.5", "b", "0.01", "c", "0", "d", "2", "e", "0.02"))
	selected, err := ms.Select(Options{Threshold: 0.1, KeepN: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !namesEqual(selected.Names(), []string{"b", "c"}) {
		t.Errorf("Select failed: %v", selected.Names())
	}
	selected, err = ms.Select(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if selected.Len() != 5 {
		t.Error("Select without options failed")
	}
}

func TestParseSelection(t *testing.T) {
	if s, err := ParseSelection("rank"); err != nil || s != ByRank {
		t.Error("ParseSelection rank failed")
	}
	if s, err := ParseSelection("order"); err != nil || s != ByOrder {
		t.Error("ParseSelection order failed")
	}
	if _, err := ParseSelection("random"); err == nil {
		t.Error("ParseSelection random did not fail")
	}
}
