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

package mcluster

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/elmotif/internal"
	"github.com/exascience/elmotif/utils"
)

// parseEdge returns the two nodes of an edge list line. Text after
// # is a comment, and fields after the second are edge data, which is
// ignored.
func parseEdge(line string) (u, v string, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// ReadEdgeList reads an undirected graph from an edge list, one edge
// per line. Lines with fewer than two nodes are skipped.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	g := NewGraph()
	lineNo := 0
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, line := range data.([]string) {
			lineNo++
			if u, v, ok := parseEdge(line); ok {
				g.addEdge(u, v, lineNo)
			}
		}
		return data
	})))
	if err := internal.RunPipeline(&p); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadEdgeListFile reads the named edge list file.
func ReadEdgeListFile(filename string) (g *Graph, err error) {
	err = internal.ReadFile(filename, func(r io.Reader) error {
		g, err = ReadEdgeList(r)
		return err
	})
	if err != nil {
		return nil, utils.WithFile(err, filename)
	}
	return g, nil
}

// Format is the layout of an mcluster file.
type Format int

const (
	// PythonList writes the nodes as a Python list literal, for
	// example ['motif_01_1', 'motif_02_4'].
	PythonList Format = iota
	// Lines writes one node per line.
	Lines
)

// ParseFormat converts "python" or "lines" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "python":
		return PythonList, nil
	case "lines":
		return Lines, nil
	default:
		return PythonList, fmt.Errorf("invalid mcluster format %v", s)
	}
}

func pythonQuote(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', quote:
			buf = append(buf, '\\', c)
		default:
			buf = append(buf, c)
		}
	}
	return string(append(buf, quote))
}

// FormatNodes renders the nodes of a component in the given format.
func FormatNodes(c Component, format Format) string {
	var b strings.Builder
	switch format {
	case Lines:
		for _, node := range c.Nodes {
			b.WriteString(node)
			b.WriteByte('\n')
		}
	default:
		b.WriteByte('[')
		for i, node := range c.Nodes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(pythonQuote(node))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// ClusterFilename returns the name of the file for the n-th (1-based)
// mcluster: <dir>/<prefix><n>.list
func ClusterFilename(dir, prefix string, n int) string {
	return filepath.Join(dir, prefix+strconv.Itoa(n)+".list")
}

// WriteClusters writes one file per mcluster, numbered from 1 in the
// given order, and returns the filenames.
func WriteClusters(dir, prefix string, format Format, clusters []Component) ([]string, error) {
	filenames := make([]string, 0, len(clusters))
	for i, cluster := range clusters {
		filename := ClusterFilename(dir, prefix, i+1)
		content := FormatNodes(cluster, format)
		if err := internal.WriteFile(filename, func(w *bufio.Writer) error {
			_, err := w.WriteString(content)
			return err
		}); err != nil {
			return filenames, err
		}
		filenames = append(filenames, filename)
	}
	return filenames, nil
}
