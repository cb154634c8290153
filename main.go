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

// elMotif converts consensus motifs to Homer motifs, extracts
// significant motifs and motif groups from MEME files, and extracts
// motif clusters from motif similarity graphs.
//
// Please see https://github.com/exascience/elmotif for a documentation
// of the tool.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/exascience/elmotif/cmd"
	"github.com/exascience/elmotif/logger"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: consensus-to-homer, extract-motifs, extract-groups, get-clusters")
	fmt.Fprint(os.Stderr, "\n", cmd.ConsensusToHomerHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ExtractMotifsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ExtractGroupsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.GetClustersHelp)
}

func main() {
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	cmd.LoadEnvironment()

	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "consensus-to-homer":
		err = cmd.ConsensusToHomer(os.Args[2:])
	case "extract-motifs":
		err = cmd.ExtractMotifs(os.Args[2:])
	case "extract-groups":
		err = cmd.ExtractGroups(os.Args[2:])
	case "get-clusters":
		err = cmd.GetClusters(os.Args[2:])
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		fmt.Fprintln(os.Stderr, "Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil && !cmd.IsHelp(err) {
		logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
