package main

import (
	"fmt"
	"os"

	"resume-agent/internal/shared/telemetry"
)

func main() {
	// stdout carries command output
	telemetry.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
