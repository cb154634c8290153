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
	"sort"
	"strings"

	psort "github.com/exascience/pargo/sort"
)

// Selection is the strategy TopK uses to choose motifs.
type Selection int

const (
	// ByRank keeps the motifs with the smallest E-values. Motifs with
	// equal E-values keep their relative order.
	ByRank Selection = iota
	// ByOrder keeps the first motifs in insertion order, regardless
	// of their E-values.
	//
	// Deprecated: ByOrder only exists to reproduce old results, use
	// ByRank instead.
	ByOrder
)

func (s Selection) String() string {
	switch s {
	case ByRank:
		return "rank"
	case ByOrder:
		return "order"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection converts "rank" or "order" to a Selection.
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(s) {
	case "", "rank":
		return ByRank, nil
	case "order", "ordinal":
		return ByOrder, nil
	default:
		return ByRank, fmt.Errorf("invalid selection strategy %v", s)
	}
}

type rankedMotif struct {
	m      *Motif
	evalue float64
}

func sortByEValue(ranked []rankedMotif) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].evalue < ranked[j].evalue
	})
}

type stableRankSorter []rankedMotif

func (s stableRankSorter) SequentialSort(i, j int) {
	sortByEValue(s[i:j])
}

func (s stableRankSorter) NewTemp() psort.StableSorter {
	return stableRankSorter(make([]rankedMotif, len(s)))
}

func (s stableRankSorter) Len() int {
	return len(s)
}

func (s stableRankSorter) Less(i, j int) bool {
	return s[i].evalue < s[j].evalue
}

func (s stableRankSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableRankSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// SortedByEValue returns the motifs ordered by ascending E-value. Ties
// keep insertion order.
func (ms *Motifs) SortedByEValue() ([]*Motif, error) {
	ranked := make([]rankedMotif, len(ms.list))
	for i, m := range ms.list {
		evalue, err := m.EValue()
		if err != nil {
			return nil, err
		}
		ranked[i] = rankedMotif{m, evalue}
	}
	psort.StableSort(stableRankSorter(ranked))
	result := make([]*Motif, len(ranked))
	for i, r := range ranked {
		result[i] = r.m
	}
	return result, nil
}

// TopK returns a new collection with at most k motifs chosen by the
// given strategy. The result keeps the insertion order of ms.
func (ms *Motifs) TopK(k int, selection Selection) (*Motifs, error) {
	if k <= 0 {
		return nil, fmt.Errorf("number of motifs to keep must be positive, got %v", k)
	}
	if k >= len(ms.list) {
		return ms.Filter(func(*Motif) (bool, error) { return true, nil })
	}
	var kept []*Motif
	switch selection {
	case ByRank:
		sorted, err := ms.SortedByEValue()
		if err != nil {
			return nil, err
		}
		kept = sorted[:k]
	case ByOrder:
		kept = ms.list[:k]
	default:
		return nil, fmt.Errorf("invalid selection strategy %v", selection)
	}
	keep := make(map[*Motif]bool, k)
	for _, m := range kept {
		keep[m] = true
	}
	return ms.Filter(func(m *Motif) (bool, error) {
		return keep[m], nil
	})
}

// Options control Select.
type Options struct {
	// Threshold is the E-value threshold. Zero disables the
	// significance filter.
	Threshold float64
	// KeepN is the maximum number of motifs to keep. Zero keeps all.
	KeepN     int
	Selection Selection
}

// Select applies the significance filter and then the top-K
// selection, as configured by opts.
func (ms *Motifs) Select(opts Options) (result *Motifs, err error) {
	result = ms
	if opts.Threshold != 0 {
		if result, err = result.FilterByThreshold(opts.Threshold); err != nil {
			return nil, err
		}
	}
	if opts.KeepN != 0 {
		if result, err = result.TopK(opts.KeepN, opts.Selection); err != nil {
			return nil, err
		}
	}
	return result, nil
}
