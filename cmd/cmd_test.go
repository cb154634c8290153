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

package cmd

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/elmotif/mcluster"
	"github.com/exascience/elmotif/meme"
	"github.com/exascience/elmotif/utils"
)

func init() {
	stderr = ioutil.Discard
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func readTestFile(t *testing.T, filename string) string {
	t.Helper()
	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func isUsageError(err error) bool {
	var uerr *utils.UsageError
	return errors.As(err, &uerr)
}

func testMotif(name, evalue string) string {
	return "MOTIF " + name + " ACGT\n" +
		"letter-probability matrix: alength= 4 w= 1 nsites= 3 E= " + evalue + "\n" +
		"0.25\t0.25\t0.25\t0.25\n\n"
}

const testMeme = "MEME version 4\n\nALPHABET= ACGT\n\n"

func TestParseConsensusToHomer(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "in.consensus", "DE\tA 1\nXX\n")
	cfg, _, err := ParseConsensusToHomer([]string{"-i", input, "--homer_file", filepath.Join(dir, "out.homer")})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != input || cfg.Output != filepath.Join(dir, "out.homer") {
		t.Errorf("ParseConsensusToHomer failed: %+v", cfg)
	}
	if _, _, err := ParseConsensusToHomer([]string{"-i", input}); !isUsageError(err) {
		t.Errorf("missing -o not reported: %v", err)
	}
	if _, _, err := ParseConsensusToHomer([]string{"-o", filepath.Join(dir, "x")}); !isUsageError(err) {
		t.Errorf("missing -i not reported: %v", err)
	}
	if _, _, err := ParseConsensusToHomer([]string{"-i", input, "-o", filepath.Join(dir, "x"), "extra"}); !isUsageError(err) {
		t.Errorf("extra parameter not reported: %v", err)
	}
	if _, _, err := ParseConsensusToHomer([]string{"-h"}); !IsHelp(err) {
		t.Errorf("help not reported: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Error("sanity checks left files behind")
	}
}

func TestConsensusToHomer(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "in.consensus", "DE\tMotifA 0.8\n0.1\t0.2\t0.3\t0.4\nXX\n")
	output := filepath.Join(dir, "out.homer")
	if err := ConsensusToHomer([]string{"-i", input, "-o", output}); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, output); got != ">DE\tMotifA\t0.8\n0.1\t0.2\t0.3\t0.4\t\n" {
		t.Errorf("ConsensusToHomer failed: %q", got)
	}
	broken := writeTestFile(t, dir, "broken.consensus", "DE\tMotifA 0.8\n")
	other := filepath.Join(dir, "other.homer")
	err := ConsensusToHomer([]string{"-i", broken, "-o", other})
	var ferr *utils.FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("unterminated block not reported: %v", err)
	}
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Error("failed conversion left output behind")
	}
}

func TestParseExtract(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "in.meme", testMeme)
	names := writeTestFile(t, dir, "names.txt", "['a']\n")
	output := filepath.Join(dir, "out.meme")

	cfg, _, err := ParseExtractMotifs([]string{"--motif_MEME", input, "--out_file", output, "--motif_threshold", "0.05", "--keepnmotifs", "3", "--selection", "order"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Options.Threshold != 0.05 || cfg.Options.KeepN != 3 || cfg.Options.Selection != meme.ByOrder || cfg.GroupOutput != SingleFile {
		t.Errorf("ParseExtractMotifs failed: %+v", cfg)
	}
	if cfg, _, err = ParseExtractMotifs([]string{"-i", input, "-o", output}); err != nil || cfg.Options.KeepN != 0 {
		t.Errorf("ParseExtractMotifs defaults failed: %+v %v", cfg, err)
	}
	for _, args := range [][]string{
		{"-i", input, "-o", output, "-t", "0"},
		{"-i", input, "-o", output, "-t", "-1"},
		{"-i", input, "-o", output, "-k", "0"},
		{"-i", input, "-o", output, "--selection", "random"},
		{"-i", input, "-o", output, "--group-output", "some"},
		{"-i", input, "-o", output, "-n", filepath.Join(dir, "missing.txt")},
		{"-i", input, "-o", output, "-t", "abc"},
	} {
		if _, _, err := ParseExtractMotifs(args); !isUsageError(err) {
			t.Errorf("ParseExtractMotifs(%v) did not fail: %v", args, err)
		}
	}

	cfg, _, err = ParseExtractGroups([]string{"-i", input, "-o", output, "-n", names})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Options.KeepN != DefaultGroupKeepN || cfg.GroupOutput != GroupFiles || cfg.NameList != names {
		t.Errorf("ParseExtractGroups defaults failed: %+v", cfg)
	}
	if _, _, err := ParseExtractGroups([]string{"-i", input, "-o", output}); !isUsageError(err) {
		t.Errorf("missing name list not reported: %v", err)
	}
	t.Setenv(EnvKeepN, "7")
	if cfg, _, err = ParseExtractGroups([]string{"-i", input, "-o", output, "-n", names}); err != nil || cfg.Options.KeepN != 7 {
		t.Errorf("ParseExtractGroups environment failed: %+v %v", cfg, err)
	}
	t.Setenv(EnvKeepN, "none")
	if cfg, _, err = ParseExtractGroups([]string{"-i", input, "-o", output, "-n", names}); err != nil || cfg.Options.KeepN != DefaultGroupKeepN {
		t.Errorf("ParseExtractGroups invalid environment failed: %+v %v", cfg, err)
	}
}

func TestGroupFilename(t *testing.T) {
	g := meme.Group{Number: 3}
	if got := GroupFilename("out/motifs.meme", g); got != "out/motifs.Group3.meme" {
		t.Errorf("GroupFilename 1 failed: %v", got)
	}
	if got := GroupFilename("motifs", g); got != "motifs.Group3" {
		t.Errorf("GroupFilename 2 failed: %v", got)
	}
}

func TestExtractNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "in.meme", testMeme+
		testMotif("motif10", "0.01")+testMotif("motif2", "0.5")+testMotif("motif1", "0")+testMotif("motif3", "0.02"))
	output := filepath.Join(dir, "out.meme")
	if err := ExtractMotifs([]string{"-i", input, "-o", output, "-t", "0.1", "-k", "2"}); err != nil {
		t.Fatal(err)
	}
	expected := meme.Header + testMotif("motif1", "0") + testMotif("motif10", "0.01")
	if got := readTestFile(t, output); got != expected {
		t.Errorf("extract-motifs failed:\n%q\n%q", got, expected)
	}
}

func TestExtractGroups(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "in.meme", testMeme+
		testMotif("a", "0.01")+testMotif("b", "0.5")+testMotif("c", "0"))
	names := writeTestFile(t, dir, "names.txt", "['c', 'a']\n\n('b', 'x')\n")
	output := filepath.Join(dir, "out.meme")

	if err := ExtractGroups([]string{"-i", input, "-o", output, "-n", names}); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, filepath.Join(dir, "out.Group1.meme")); got != meme.Header+testMotif("c", "0")+testMotif("a", "0.01") {
		t.Errorf("extract-groups group 1 failed: %q", got)
	}
	if got := readTestFile(t, filepath.Join(dir, "out.Group2.meme")); got != meme.Header+testMotif("b", "0.5") {
		t.Errorf("extract-groups group 2 failed: %q", got)
	}

	if err := ExtractGroups([]string{"-i", input, "-o", output, "-n", names, "-t", "0.1", "--group-output", "single"}); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, output); got != meme.Header+testMotif("c", "0")+testMotif("a", "0.01") {
		t.Errorf("extract-groups single failed: %q", got)
	}

	last := filepath.Join(dir, "last.meme")
	if err := ExtractGroups([]string{"-i", input, "-o", last, "-n", names, "--group-output", "last"}); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t, last); got != meme.Header+testMotif("b", "0.5") {
		t.Errorf("extract-groups last failed: %q", got)
	}

	strict := filepath.Join(dir, "strict.meme")
	err := ExtractGroups([]string{"-i", input, "-o", strict, "-n", names, "--strict", "--group-output", "single"})
	var lerr *utils.LookupError
	if !errors.As(err, &lerr) || len(lerr.Missing) != 1 || lerr.Missing[0].Name != "x" || lerr.Missing[0].Group != 2 {
		t.Errorf("strict mode failed: %v", err)
	}
	if _, err := os.Stat(strict); !os.IsNotExist(err) {
		t.Error("strict mode wrote output")
	}
}

func TestGetClusters(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "graph.edgelist",
		"motif_01_1 motif_02_1\nmotif_02_1 motif_03_1\nmotif_04_1 motif_04_2\nmotif_05_1 motif_05_1\nmotif_05_1 motif_06_1\n")
	outDir := filepath.Join(dir, "clusters")
	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	if err := GetClusters([]string{"-i", input, "-t", "2", "--out-dir", outDir}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "There are 2 mclusters identified\n" {
		t.Errorf("get-clusters report failed: %q", out.String())
	}
	if got := readTestFile(t, filepath.Join(outDir, "mcluster1.list")); got != "['motif_01_1', 'motif_02_1', 'motif_03_1']" {
		t.Errorf("get-clusters mcluster1 failed: %v", got)
	}
	if got := readTestFile(t, filepath.Join(outDir, "mcluster2.list")); got != "['motif_05_1', 'motif_06_1']" {
		t.Errorf("get-clusters mcluster2 failed: %v", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "mcluster3.list")); !os.IsNotExist(err) {
		t.Error("get-clusters wrote too many mclusters")
	}

	out.Reset()
	if err := GetClusters([]string{"--edgelist", input, "--threshold", "3", "--out-dir", outDir, "--prefix", "mc", "--format", "lines"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "There are 1 mclusters") {
		t.Errorf("get-clusters threshold failed: %q", out.String())
	}
	if got := readTestFile(t, filepath.Join(outDir, "mc1.list")); got != "motif_01_1\nmotif_02_1\nmotif_03_1\n" {
		t.Errorf("get-clusters lines failed: %q", got)
	}
}

func TestParseGetClusters(t *testing.T) {
	dir := t.TempDir()
	input := writeTestFile(t, dir, "graph.edgelist", "")
	cfg, _, err := ParseGetClusters([]string{"-i", input, "--out-dir", dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != DefaultClusterThreshold || cfg.Prefix != DefaultClusterPrefix || cfg.Format != mcluster.PythonList {
		t.Errorf("ParseGetClusters defaults failed: %+v", cfg)
	}
	t.Setenv(EnvClusterThreshold, "4")
	if cfg, _, err = ParseGetClusters([]string{"-i", input, "--out-dir", dir}); err != nil || cfg.Threshold != 4 {
		t.Errorf("ParseGetClusters environment failed: %+v %v", cfg, err)
	}
	for _, args := range [][]string{
		{"-i", input, "--out-dir", dir, "-t", "0"},
		{"-i", input, "--out-dir", dir, "--format", "json"},
		{"-i", input, "--out-dir", dir, "--prefix", ""},
		{"--out-dir", dir, "-t", "2"},
	} {
		if _, _, err := ParseGetClusters(args); !isUsageError(err) {
			t.Errorf("ParseGetClusters(%v) did not fail: %v", args, err)
		}
	}
}
