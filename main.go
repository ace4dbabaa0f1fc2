package main

import (
	"curseforge-client/cmd"
	"curseforge-client/logger"

	_ "go.uber.org/automaxprocs"
)

func main() {
	defer logger.Sync() // the logger itself is set up by the root command
	cmd.Execute()
}
