// Package main provides the patternbook binary entry point.
// Patternbook is a read-only reference catalog of classic object-oriented
// design patterns, loaded from markdown catalog documents.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/c360studio/patternbook/commands"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := commands.NewRootCmd(Version, BuildTime).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
