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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/exascience/elmotif/utils"
)

const evalueToken = "E="

// ParseEValue extracts the E-value from the second line of a motif.
// The value is the first token after the E= marker. Values that
// underflow parse as 0, values that overflow as +Inf.
func ParseEValue(line string) (float64, error) {
	i := strings.Index(line, evalueToken)
	if i < 0 {
		return 0, fmt.Errorf("missing %v token in %q", evalueToken, strings.TrimSpace(line))
	}
	rest := line[i+len(evalueToken):]
	if j := strings.Index(rest, evalueToken); j >= 0 {
		rest = rest[:j]
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing E-value after %v in %q", evalueToken, strings.TrimSpace(line))
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid E-value %q", fields[0])
	}
	if math.IsNaN(value) || value < 0 {
		return 0, fmt.Errorf("invalid E-value %q", fields[0])
	}
	return value, nil
}

// EValue returns the E-value of the motif. The error is a
// *utils.FormatError if the second line of the motif does not carry a
// valid E-value.
func (m *Motif) EValue() (float64, error) {
	if m.evalueErr != nil {
		return 0, &utils.FormatError{Line: m.Line + 1, Block: m.Block, Msg: fmt.Sprintf("motif %v: %v", m.Name, m.evalueErr)}
	}
	return m.evalue, nil
}

func checkThreshold(threshold float64) error {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return fmt.Errorf("E-value threshold must be a positive number, got %v", threshold)
	}
	return nil
}

// CheckThreshold returns true if the motif is significant with
// respect to the given threshold: its E-value is 0, or the log-ratio
// of its E-value and the threshold is not positive.
func CheckThreshold(m *Motif, threshold float64) (bool, error) {
	if err := checkThreshold(threshold); err != nil {
		return false, err
	}
	evalue, err := m.EValue()
	if err != nil {
		return false, err
	}
	if evalue == 0 {
		return true, nil
	}
	return math.Log(evalue/threshold) <= 0, nil
}

// FilterByThreshold returns the motifs that pass CheckThreshold.
func (ms *Motifs) FilterByThreshold(threshold float64) (*Motifs, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}
	return ms.Filter(func(m *Motif) (bool, error) {
		return CheckThreshold(m, threshold)
	})
}
