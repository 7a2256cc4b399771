package main

import (
	"os"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/cli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	cli.SetAgentRegistrar(registerAll)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
