// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/famicore/gones/monitor"
)

var rom string

func init() {
	flag.StringVar(&rom, "rom", "", "iNES ROM file to load at startup")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gones [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	m := monitor.New()

	// Load a ROM if requested.
	if rom != "" {
		m.RunCommands(strings.NewReader("load rom "+rom), os.Stdout, false)
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		m.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(m, c)

	// Run commands interactively. Skip the prompt when stdin is not a
	// terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	m.RunCommands(os.Stdin, os.Stdout, interactive)
}

func handleInterrupt(m *monitor.Monitor, c chan os.Signal) {
	for {
		<-c
		m.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
