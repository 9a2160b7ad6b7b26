// Package main is the entry point for the tennismetrics CLI tool, which
// analyzes Grand Slam point-by-point data and computes match momentum
// metrics.
package main

import "github.com/courtside/go-tennis-metrics/cmd"

func main() {
	cmd.Execute()
}
