package main

import "github.com/bbugyi200/bugyi/cmd"

// These variables are set via ldflags at release time
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}
