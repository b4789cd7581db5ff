/*
 * Hypo - main process
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command hypo runs the Hypothetical Decimal Machine and its
// cooperative mini-OS kernel behind an interactive operator console.
package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/hypo/console"
	"github.com/rcornwell/hypo/internal/obslog"
	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/kernel"
	"github.com/rcornwell/hypo/machine"
)

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "Module file to run at startup")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optQuantum := getopt.IntLong("quantum", 'q', int(machine.InitialQuantum), "Per-run clock quantum")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror every log record to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logOut io.Writer
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "file", *optLogFile, "err", err)
			os.Exit(1)
		}
		logOut = f
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	logger := slog.New(obslog.NewHandler(logOut, &slog.HandlerOptions{Level: programLevel}, *optDebug))
	slog.SetDefault(logger)

	logger.Info("hypo started", "quantum", *optQuantum)

	k := kernel.NewKernel(logger)
	k.Quantum = machine.Word(*optQuantum)

	if *optProgram != "" {
		f, err := os.Open(*optProgram)
		if err != nil {
			logger.Error("cannot open startup program", "file", *optProgram, "err", err)
			os.Exit(1)
		}
		pid, errK := k.CreateProcess(f, kernel.DefaultPriority)
		f.Close()
		if errK != result.OK {
			logger.Error("cannot create startup process", "err", errK)
			os.Exit(1)
		}
		logger.Info("startup process created", "pid", pid)
	}

	c := console.New(k, logger)
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case <-sigChan:
		logger.Info("signal received, shutting down")
		k.DoShutdown()
	case err := <-done:
		if err != nil {
			logger.Error("console exited", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("hypo stopped")
}
