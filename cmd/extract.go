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
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/exascience/elmotif/logger"
	"github.com/exascience/elmotif/meme"
	"github.com/exascience/elmotif/utils"
)

// ExtractMotifsHelp is the help string for the extract-motifs command.
const ExtractMotifsHelp = "extract-motifs parameters:\n" +
	"elmotif extract-motifs -i meme-file -o out-file\n" +
	"[-t evalue-threshold]\n" +
	"[-k nr-of-motifs]\n" +
	"[--selection [rank | order]]\n" +
	"[-n name-list-file]\n" +
	"[--group-output [single | files | last]]\n" +
	"[--strict]\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// ExtractGroupsHelp is the help string for the extract-groups command.
const ExtractGroupsHelp = "extract-groups parameters:\n" +
	"elmotif extract-groups -i meme-file -o out-file -n name-list-file\n" +
	"[-t evalue-threshold]\n" +
	"[-k nr-of-motifs (default 25)]\n" +
	"[--selection [rank | order]]\n" +
	"[--group-output [files | single | last]]\n" +
	"[--strict]\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// GroupOutput determines how the groups of a name list are written.
type GroupOutput int

const (
	// GroupFiles writes one MEME file per group.
	GroupFiles GroupOutput = iota
	// SingleFile writes all groups to the same MEME file.
	SingleFile
	// LastGroup only writes the last group of the name list.
	LastGroup
)

func (g GroupOutput) String() string {
	switch g {
	case GroupFiles:
		return "files"
	case SingleFile:
		return "single"
	case LastGroup:
		return "last"
	default:
		return fmt.Sprintf("GroupOutput(%d)", int(g))
	}
}

// ParseGroupOutput converts "files", "single" or "last" to a
// GroupOutput.
func ParseGroupOutput(s string) (GroupOutput, error) {
	switch strings.ToLower(s) {
	case "files":
		return GroupFiles, nil
	case "single":
		return SingleFile, nil
	case "last":
		return LastGroup, nil
	default:
		return GroupFiles, fmt.Errorf("invalid group output %v", s)
	}
}

// GroupFilename returns the output filename for a group: Group<N> is
// inserted before the extension of the output filename, for example
// out.meme becomes out.Group1.meme.
func GroupFilename(output string, group meme.Group) string {
	ext := filepath.Ext(output)
	if strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return strings.TrimSuffix(output, ext) + "." + group.Label() + ext
}

// ExtractConfig is the validated configuration of the extract-motifs
// and extract-groups commands.
type ExtractConfig struct {
	Input, Output string
	NameList      string
	Options       meme.Options
	GroupOutput   GroupOutput
	Strict        bool
	Timed         bool
}

func parseExtract(command string, args []string, help string, grouped bool) (cfg ExtractConfig, logPath string, err error) {
	var (
		selection, groupOutput string
	)

	defaultKeepN, defaultGroupOutput := 0, "single"
	if grouped {
		defaultKeepN, defaultGroupOutput = envPositiveInt(EnvKeepN, DefaultGroupKeepN), "files"
	}

	var flags flag.FlagSet
	flags.StringVar(&cfg.Input, "i", "", "MEME motif file")
	flags.StringVar(&cfg.Input, "motif_MEME", "", "MEME motif file")
	flags.StringVar(&cfg.Output, "o", "", "output MEME file")
	flags.StringVar(&cfg.Output, "out_file", "", "output MEME file")
	flags.Float64Var(&cfg.Options.Threshold, "t", 0, "E-value threshold")
	flags.Float64Var(&cfg.Options.Threshold, "motif_threshold", 0, "E-value threshold")
	flags.IntVar(&cfg.Options.KeepN, "k", defaultKeepN, "number of motifs to keep")
	flags.IntVar(&cfg.Options.KeepN, "keepnmotifs", defaultKeepN, "number of motifs to keep")
	flags.StringVar(&selection, "selection", "rank", "how to choose the motifs to keep")
	flags.StringVar(&cfg.NameList, "n", "", "file with one list of motif names per line")
	flags.StringVar(&cfg.NameList, "motif_name", "", "file with one list of motif names per line")
	flags.StringVar(&groupOutput, "group-output", defaultGroupOutput, "how to write the groups of the name list")
	flags.BoolVar(&cfg.Strict, "strict", false, "fail on unknown motif names")
	flags.StringVar(&logPath, "log-path", envString(EnvLogPath, ""), "write log files to the specified directory")
	flags.BoolVar(&cfg.Timed, "timed", false, "log the elapsed time")
	if err = parseFlags(&flags, command, args, help); err != nil {
		return
	}

	checks := sanityChecks{command: command}
	checks.checkExist("-i", cfg.Input)
	if cfg.Options.Threshold < 0 || (cfg.Options.Threshold == 0 && isSet(&flags, "t", "motif_threshold")) {
		checks.fail("invalid E-value threshold %v, must be positive", cfg.Options.Threshold)
	}
	if cfg.Options.KeepN < 0 || (cfg.Options.KeepN == 0 && isSet(&flags, "k", "keepnmotifs")) {
		checks.fail("invalid number of motifs to keep %v, must be positive", cfg.Options.KeepN)
	}
	if cfg.Options.Selection, err = meme.ParseSelection(selection); err != nil {
		checks.fail("%v", err)
	}
	if cfg.GroupOutput, err = ParseGroupOutput(groupOutput); err != nil {
		checks.fail("%v", err)
	}
	if cfg.NameList != "" {
		checks.checkExist("-n", cfg.NameList)
	} else if grouped {
		checks.fail("missing name list file for command line parameter -n")
	}
	checks.checkCreate("-o", cfg.Output)
	err = checks.err(help)
	return
}

// ParseExtractMotifs parses the command line of the extract-motifs
// command.
func ParseExtractMotifs(args []string) (ExtractConfig, string, error) {
	return parseExtract("extract-motifs", args, ExtractMotifsHelp, false)
}

// ParseExtractGroups parses the command line of the extract-groups
// command.
func ParseExtractGroups(args []string) (ExtractConfig, string, error) {
	return parseExtract("extract-groups", args, ExtractGroupsHelp, true)
}

func writeGroups(cfg ExtractConfig, groups []meme.Group, selected [][]*meme.Motif) error {
	switch cfg.GroupOutput {
	case GroupFiles:
		for i, group := range groups {
			filename := GroupFilename(cfg.Output, group)
			if err := meme.ToMemeFile(filename, selected[i]); err != nil {
				return err
			}
			logger.Info("Wrote motif group", zap.String("group", group.Label()), zap.String("file", filename), zap.Int("motifs", len(selected[i])))
		}
		if len(groups) == 0 {
			logger.Warn("Name list contains no groups, no output written", zap.String("file", cfg.NameList))
		}
		return nil
	case SingleFile:
		var all []*meme.Motif
		for _, motifs := range selected {
			all = append(all, motifs...)
		}
		if err := meme.ToMemeFile(cfg.Output, all); err != nil {
			return err
		}
		logger.Info("Wrote motif groups", zap.String("file", cfg.Output), zap.Int("groups", len(groups)), zap.Int("motifs", len(all)))
		return nil
	case LastGroup:
		var last []*meme.Motif
		if len(selected) > 0 {
			last = selected[len(selected)-1]
		}
		if err := meme.ToMemeFile(cfg.Output, last); err != nil {
			return err
		}
		logger.Info("Wrote last motif group", zap.String("file", cfg.Output), zap.Int("motifs", len(last)))
		return nil
	default:
		return fmt.Errorf("invalid group output %v", cfg.GroupOutput)
	}
}

func reportMissing(lerr *utils.LookupError) {
	for _, missing := range lerr.Missing {
		logger.Warn("Unknown motif name in name list", zap.String("name", missing.Name), zap.Int("group", missing.Group))
	}
}

// RunExtract parses a MEME file, selects motifs as configured, and
// writes them. Without a name list, all selected motifs are written in
// natural order of their names.
//
// Names in the name list that are not among the selected motifs are
// skipped and reported in the log. In strict mode, they are returned
// as a *utils.LookupError instead, and no output is written.
func RunExtract(cfg ExtractConfig) error {
	return timedRun(cfg.Timed, "Extracting motifs.", func() error {
		ms, err := meme.ParseFile(cfg.Input)
		if err != nil {
			return err
		}
		logger.Info("Parsed MEME motifs", zap.String("file", cfg.Input), zap.Int("motifs", ms.Len()))

		selected, err := ms.Select(cfg.Options)
		if err != nil {
			return utils.WithFile(err, cfg.Input)
		}
		logger.Info("Selected motifs",
			zap.Float64("threshold", cfg.Options.Threshold),
			zap.Int("keep", cfg.Options.KeepN),
			zap.Stringer("selection", cfg.Options.Selection),
			zap.Int("motifs", selected.Len()))

		if cfg.NameList == "" {
			motifs := selected.NaturallySorted()
			if err := meme.ToMemeFile(cfg.Output, motifs); err != nil {
				return err
			}
			logger.Info("Wrote motifs", zap.String("file", cfg.Output), zap.Int("motifs", len(motifs)))
			return nil
		}

		groups, err := meme.ParseNameListFile(cfg.NameList)
		if err != nil {
			return err
		}
		motifs, lookupErr := selected.SelectGroups(groups)
		var lerr *utils.LookupError
		if lookupErr != nil && !errors.As(lookupErr, &lerr) {
			return lookupErr
		}
		if lerr != nil {
			reportMissing(lerr)
			if cfg.Strict {
				return lerr
			}
		}
		if err := writeGroups(cfg, groups, motifs); err != nil {
			return err
		}
		if lerr != nil {
			logger.Warn("Skipped unknown motif names", zap.Int("count", len(lerr.Missing)))
		}
		return nil
	})
}

func extract(args []string, parse func([]string) (ExtractConfig, string, error)) error {
	cfg, logPath, err := parse(args)
	if err != nil {
		return err
	}
	closeLog, err := setLogOutput(logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	return RunExtract(cfg)
}

// ExtractMotifs implements the elmotif extract-motifs command.
func ExtractMotifs(args []string) error {
	return extract(args, ParseExtractMotifs)
}

// ExtractGroups implements the elmotif extract-groups command.
func ExtractGroups(args []string) error {
	return extract(args, ParseExtractGroups)
}
