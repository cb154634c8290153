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
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/exascience/elmotif/internal"
	"github.com/exascience/elmotif/logger"
	"github.com/exascience/elmotif/utils"
)

// ProgramMessage is the first line printed when the elmotif binary is
// called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

// Help and status messages are written here.
var (
	stderr io.Writer = os.Stderr
	stdout io.Writer = os.Stdout
)

// parseFlags parses the command arguments. It returns flag.ErrHelp if
// help was requested, and a *utils.UsageError for anything else that
// goes wrong. The help text is printed in both cases.
func parseFlags(flags *flag.FlagSet, command string, args []string, help string) error {
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			fmt.Fprint(stderr, help)
			return err
		}
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, help)
		return &utils.UsageError{Command: command, Msg: err.Error()}
	}
	if flags.NArg() > 0 {
		fmt.Fprint(stderr, help)
		return utils.NewUsageError(command, "cannot parse remaining parameters: %v", flags.Args())
	}
	return nil
}

// isSet reports whether one of the given flags was set on the command line.
func isSet(flags *flag.FlagSet, names ...string) (set bool) {
	flags.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return
}

// sanityChecks collects the problems found with the command line, so
// that they can be reported together.
type sanityChecks struct {
	command  string
	problems []string
}

func (s *sanityChecks) fail(format string, v ...interface{}) {
	s.problems = append(s.problems, fmt.Sprintf(format, v...))
}

func (s *sanityChecks) failed() bool {
	return len(s.problems) > 0
}

func (s *sanityChecks) err(help string) error {
	if !s.failed() {
		return nil
	}
	for _, problem := range s.problems {
		fmt.Fprintln(stderr, "Error:", problem)
	}
	fmt.Fprint(stderr, help)
	return utils.NewUsageError(s.command, "%v", strings.Join(s.problems, "; "))
}

func checkFileProblem(parameter, format string, v ...interface{}) string {
	return fmt.Sprintf(format+" for command line parameter %v", append(v, parameter)...)
}

func (s *sanityChecks) checkExist(parameter, filename string) {
	if filename == "" {
		s.problems = append(s.problems, checkFileProblem(parameter, "missing filename"))
		return
	}
	if filename[0] == '-' {
		s.problems = append(s.problems, checkFileProblem(parameter, "missing filename before %v", filename))
		return
	}
	if _, err := os.Stat(filename); err == nil {
		return
	} else if os.IsNotExist(err) {
		s.problems = append(s.problems, checkFileProblem(parameter, "file %v does not exist", filename))
	} else if os.IsPermission(err) {
		s.problems = append(s.problems, checkFileProblem(parameter, "no permission to read file %v", filename))
	} else {
		s.problems = append(s.problems, checkFileProblem(parameter, "%v when trying to access file %v", err, filename))
	}
}

func (s *sanityChecks) checkCreate(parameter, filename string) {
	if filename == "" {
		s.problems = append(s.problems, checkFileProblem(parameter, "missing filename"))
		return
	}
	if filename[0] == '-' {
		s.problems = append(s.problems, checkFileProblem(parameter, "missing filename before %v", filename))
		return
	}
	// Creating and discarding an output file checks that the target
	// directory can be written without touching an existing file.
	f, err := internal.Create(filename)
	if err == nil {
		err = f.Close()
	}
	if err != nil {
		if os.IsPermission(err) {
			s.problems = append(s.problems, checkFileProblem(parameter, "no permission to create file %v", filename))
		} else {
			s.problems = append(s.problems, checkFileProblem(parameter, "%v when trying to create file %v", err, filename))
		}
	}
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/elmotif/elmotif-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput creates a log file in the given directory, redirects
// stderr into it, and tees the log to the log file and the original
// stderr. An empty path leaves logging untouched. The returned
// function flushes and closes the log file.
func setLogOutput(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	fullPath := filepath.Join(path, createLogFilename())
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return nil, err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		_ = f.Close()
		_ = ferr.Close()
		return nil, err
	}

	logger.SetOutput(io.MultiWriter(f, ferr))
	logger.Info("Created log file", zap.String("path", fullPath))
	logger.Info("Command line", zap.Strings("args", os.Args))
	return func() {
		_ = logger.Sync()
		_ = f.Sync()
	}, nil
}

func timedRun(timed bool, msg string, f func() error) error {
	if !timed {
		return f()
	}
	logger.Info(msg)
	start := time.Now()
	defer func() {
		logger.Info("Elapsed time", zap.Duration("elapsed", time.Since(start)))
	}()
	return f()
}

// IsHelp reports whether err only signals that help was requested.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
