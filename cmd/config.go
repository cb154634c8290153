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
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/exascience/elmotif/logger"
)

// Environment variables that override built-in defaults. They can
// also be set in a .env file in the working directory.
const (
	EnvLogPath          = "ELMOTIF_LOG_PATH"
	EnvKeepN            = "ELMOTIF_KEEP_N"
	EnvClusterThreshold = "ELMOTIF_CLUSTER_THRESHOLD"
	EnvClusterPrefix    = "ELMOTIF_CLUSTER_PREFIX"
)

// Built-in defaults.
const (
	DefaultGroupKeepN       = 25
	DefaultClusterThreshold = 9
	DefaultClusterPrefix    = "mcluster"
)

// LoadEnvironment loads environment variables from the given files,
// or from .env if no files are given. Variables that are already set
// are not overridden.
func LoadEnvironment(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		logger.Debug("No .env found, using local environment")
	}
}

func envString(name, def string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return def
}

func envPositiveInt(name string, def int) int {
	value := os.Getenv(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		logger.Warn("Ignoring invalid environment variable", zap.String("name", name), zap.String("value", value))
		return def
	}
	return n
}
