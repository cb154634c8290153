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
	"flag"

	"go.uber.org/zap"

	"github.com/exascience/elmotif/consensus"
	"github.com/exascience/elmotif/logger"
)

// ConsensusToHomerHelp is the help string for this command.
const ConsensusToHomerHelp = "consensus-to-homer parameters:\n" +
	"elmotif consensus-to-homer -i consensus-file -o homer-file\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// ConsensusToHomerConfig is the validated configuration of the
// consensus-to-homer command.
type ConsensusToHomerConfig struct {
	Input, Output string
	Timed         bool
}

// ParseConsensusToHomer parses the command line of the
// consensus-to-homer command.
func ParseConsensusToHomer(args []string) (cfg ConsensusToHomerConfig, logPath string, err error) {
	var flags flag.FlagSet
	flags.StringVar(&cfg.Input, "i", "", "consensus motif file")
	flags.StringVar(&cfg.Input, "consensus_file", "", "consensus motif file")
	flags.StringVar(&cfg.Output, "o", "", "Homer motif file")
	flags.StringVar(&cfg.Output, "homer_file", "", "Homer motif file")
	flags.StringVar(&logPath, "log-path", envString(EnvLogPath, ""), "write log files to the specified directory")
	flags.BoolVar(&cfg.Timed, "timed", false, "log the elapsed time")
	if err = parseFlags(&flags, "consensus-to-homer", args, ConsensusToHomerHelp); err != nil {
		return
	}

	checks := sanityChecks{command: "consensus-to-homer"}
	checks.checkExist("-i", cfg.Input)
	checks.checkCreate("-o", cfg.Output)
	err = checks.err(ConsensusToHomerHelp)
	return
}

// RunConsensusToHomer converts a consensus motif file to a Homer
// motif file.
func RunConsensusToHomer(cfg ConsensusToHomerConfig) error {
	return timedRun(cfg.Timed, "Converting consensus motifs.", func() error {
		c, err := consensus.ParseFile(cfg.Input)
		if err != nil {
			return err
		}
		logger.Info("Parsed consensus motifs", zap.String("file", cfg.Input), zap.Int("motifs", c.Len()))
		if err := consensus.ToHomerFile(c, cfg.Output); err != nil {
			return err
		}
		logger.Info("Wrote Homer motifs", zap.String("file", cfg.Output), zap.Int("motifs", c.Len()))
		return nil
	})
}

// ConsensusToHomer implements the elmotif consensus-to-homer command.
func ConsensusToHomer(args []string) error {
	cfg, logPath, err := ParseConsensusToHomer(args)
	if err != nil {
		return err
	}
	closeLog, err := setLogOutput(logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	return RunConsensusToHomer(cfg)
}
