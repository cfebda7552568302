// Package main provides the entry point for the snapbooth server.
package main

import "github.com/snapbooth/snapbooth/cmd/snapbooth/cmd"

// Version information populated by the build system.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
