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
	"fmt"

	"go.uber.org/zap"

	"github.com/exascience/elmotif/logger"
	"github.com/exascience/elmotif/mcluster"
)

// GetClustersHelp is the help string for this command.
const GetClustersHelp = "get-clusters parameters:\n" +
	"elmotif get-clusters -i edgelist-file\n" +
	"[-t nr-of-groups (default 9)]\n" +
	"[--out-dir path]\n" +
	"[--prefix name (default mcluster)]\n" +
	"[--format [python | lines]]\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// GetClustersConfig is the validated configuration of the get-clusters
// command.
type GetClustersConfig struct {
	Input     string
	Threshold int
	OutDir    string
	Prefix    string
	Format    mcluster.Format
	Timed     bool
}

// ParseGetClusters parses the command line of the get-clusters
// command.
func ParseGetClusters(args []string) (cfg GetClustersConfig, logPath string, err error) {
	var format string
	defaultThreshold := envPositiveInt(EnvClusterThreshold, DefaultClusterThreshold)

	var flags flag.FlagSet
	flags.StringVar(&cfg.Input, "i", "", "edge list file")
	flags.StringVar(&cfg.Input, "edgelist", "", "edge list file")
	flags.IntVar(&cfg.Threshold, "t", defaultThreshold, "minimum number of distinct groups in an mcluster")
	flags.IntVar(&cfg.Threshold, "threshold", defaultThreshold, "minimum number of distinct groups in an mcluster")
	flags.StringVar(&cfg.OutDir, "out-dir", ".", "directory for the mcluster files")
	flags.StringVar(&cfg.Prefix, "prefix", envString(EnvClusterPrefix, DefaultClusterPrefix), "prefix for the mcluster filenames")
	flags.StringVar(&format, "format", "python", "layout of the mcluster files")
	flags.StringVar(&logPath, "log-path", envString(EnvLogPath, ""), "write log files to the specified directory")
	flags.BoolVar(&cfg.Timed, "timed", false, "log the elapsed time")
	if err = parseFlags(&flags, "get-clusters", args, GetClustersHelp); err != nil {
		return
	}

	checks := sanityChecks{command: "get-clusters"}
	checks.checkExist("-i", cfg.Input)
	if cfg.Threshold < 1 {
		checks.fail("invalid number of groups %v, must be at least 1", cfg.Threshold)
	}
	if cfg.Prefix == "" {
		checks.fail("empty mcluster filename prefix")
	}
	if cfg.Format, err = mcluster.ParseFormat(format); err != nil {
		checks.fail("%v", err)
	}
	if cfg.OutDir == "" {
		checks.fail("empty output directory")
	} else {
		checks.checkCreate("--out-dir", mcluster.ClusterFilename(cfg.OutDir, cfg.Prefix, 1))
	}
	err = checks.err(GetClustersHelp)
	return
}

// RunGetClusters extracts the mclusters of an edge list and writes
// one file per mcluster.
func RunGetClusters(cfg GetClustersConfig) error {
	return timedRun(cfg.Timed, "Extracting mclusters.", func() error {
		g, err := mcluster.ReadEdgeListFile(cfg.Input)
		if err != nil {
			return err
		}
		logger.Info("Read similarity graph",
			zap.String("file", cfg.Input),
			zap.Int("nodes", g.NumberOfNodes()),
			zap.Int("edges", g.NumberOfEdges()))
		if n := g.RemoveSelfLoops(); n > 0 {
			logger.Info("Removed self-loops", zap.Int("count", n))
		}
		clusters, err := g.Clusters(cfg.Threshold)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "There are %d mclusters identified\n", len(clusters))
		filenames, err := mcluster.WriteClusters(cfg.OutDir, cfg.Prefix, cfg.Format, clusters)
		for i, filename := range filenames {
			logger.Debug("Wrote mcluster", zap.String("file", filename), zap.Int("nodes", len(clusters[i].Nodes)))
		}
		if err != nil {
			return err
		}
		logger.Info("Wrote mclusters", zap.String("dir", cfg.OutDir), zap.Int("mclusters", len(filenames)), zap.Int("threshold", cfg.Threshold))
		return nil
	})
}

// GetClusters implements the elmotif get-clusters command.
func GetClusters(args []string) error {
	cfg, logPath, err := ParseGetClusters(args)
	if err != nil {
		return err
	}
	closeLog, err := setLogOutput(logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	return RunGetClusters(cfg)
}
