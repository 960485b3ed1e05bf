/*
Copyright © 2024 huimingz

semiauto - drafts commit messages for staged changes
*/
package main

import (
	"os"

	"github.com/huimingz/semiauto-go/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
